package api

import (
	"github.com/starford/fansub/internal/catalog"
	"github.com/starford/fansub/internal/models"
)

// FolderListResponse lists the folders the dialog offers.
type FolderListResponse struct {
	Folders  []string `json:"folders" example:"Manga,Manhwa" validate:"required"`
	Selected string   `json:"selected" example:"Manga" validate:"required"`
}

// CreateNoteRequest is the request body for creating a translation note.
// TotalPages accepts a JSON number or a string and is validated like form
// input. An empty Folder means the preselected folder.
type CreateNoteRequest struct {
	Title      string `json:"title" example:"Ch1" validate:"required"`
	Author     string `json:"author" example:"Ana"`
	TotalPages any    `json:"totalPages" example:"3" validate:"required"`
	Folder     string `json:"folder" example:"Manga"`
}

// CreateNoteResponse is returned after a note has been written.
type CreateNoteResponse struct {
	Path     string          `json:"path" example:"Manga/Ch1.md" validate:"required"`
	Settings models.Settings `json:"settings" validate:"required"`
}

// NoteListItem is one generated note (aliased from the catalog).
type NoteListItem = catalog.Entry

// NoteListResponse wraps note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes" validate:"required"`
	Total int            `json:"total" example:"42" validate:"required"`
}
