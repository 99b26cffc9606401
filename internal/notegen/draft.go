// Package notegen turns a dialog draft into a templated translation note.
package notegen

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/fansub/internal/apperr"
	"github.com/starford/fansub/internal/models"
)

// ParsePages parses the raw "Total Pages" field. Anything that is not a
// positive integer yields apperr.ErrInvalidPageCount.
func ParsePages(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, apperr.ErrInvalidPageCount
	}
	return n, nil
}

// NewDraft builds a validated draft from raw dialog input. Title and author
// are taken as typed, empty strings included.
func NewDraft(title, author, pagesRaw, folder string) (models.Draft, error) {
	pages, err := ParsePages(pagesRaw)
	if err != nil {
		return models.Draft{}, err
	}
	return models.Draft{
		Title:      title,
		Author:     author,
		TotalPages: pages,
		Folder:     folder,
	}, nil
}

// ValidateDraft rejects drafts that must never reach generation.
func ValidateDraft(d models.Draft) error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.TotalPages, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return apperr.ErrInvalidPageCount
	}
	return nil
}
