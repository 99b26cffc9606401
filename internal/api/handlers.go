package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// notePath extracts the note path from the URL (everything after /api/notes/).
// Supports encoded slashes from OpenAPI clients (e.g. Manga%2FCh1.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListFolders handles GET /api/folders.
//
//	@Summary		List destination folders and the preselected one
//	@Tags			folders
//	@Produce		json
//	@Success		200	{object}	FolderListResponse
//	@Security		BearerAuth
//	@Router			/folders [get]
func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Folders(r.Context())
	if err != nil {
		writeError(w, "list folders", err)
		return
	}
	writeJSON(w, http.StatusOK, FolderListResponse{
		Folders:  list.Folders,
		Selected: list.Selected,
	})
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List translation notes
//	@Tags			notes
//	@Produce		json
//	@Param			folder	query		string	false	"Restrict to a folder"
//	@Success		200		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	if folder == models.RootFolder {
		folder = ""
	}
	entries, err := h.svc.Catalog(r.Context(), folder)
	if err != nil {
		writeError(w, "list notes", err, slog.String("folder", folder))
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{
		Notes: entries,
		Total: len(entries),
	})
}

// GetNote handles GET /api/notes/*.
//
//	@Summary		Get the Markdown of a note
//	@Tags			notes
//	@Produce		text/markdown
//	@Param			path	path		string	true	"Note path"
//	@Success		200		{string}	string
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{path} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	data, err := h.svc.ReadNote(r.Context(), path)
	if err != nil {
		writeError(w, "get note", err, slog.String("path", path))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Generate a translation note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Dialog input"
//	@Success		201		{object}	CreateNoteResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	note, err := h.svc.CreateNote(r.Context(), noteservice.NoteInput{
		Title:      req.Title,
		Author:     req.Author,
		TotalPages: noteservice.PagesText(req.TotalPages),
		Folder:     req.Folder,
	})
	if err != nil {
		writeError(w, "create note", err, slog.String("title", req.Title))
		return
	}

	writeJSON(w, http.StatusCreated, CreateNoteResponse{
		Path:     note.Path,
		Settings: models.Settings{LastSelectedFolder: note.Folder},
	})
}
