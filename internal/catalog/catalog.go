// Package catalog lists the translation notes already present in the vault.
package catalog

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/parser"
)

// Source is the subset of storage.Provider the catalog reads from.
type Source interface {
	List(dir string) ([]models.NoteMetadata, error)
	Read(path string) ([]byte, error)
}

// Entry summarises one generated note.
type Entry struct {
	Path            string    `json:"path"`
	Title           string    `json:"title"`
	TranslatedTitle string    `json:"translatedTitle"`
	Author          string    `json:"author"`
	Pages           int       `json:"pages"`
	Checksum        string    `json:"checksum"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Scan returns every note under dir carrying the layout's tag. Pages counts
// the page headings of the layout. Unreadable files are skipped.
func Scan(src Source, dir string, layout notegen.Layout, logger *slog.Logger) ([]Entry, error) {
	metas, err := src.List(dir)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(metas))
	prefix := layout.HeadingPrefix + " "
	for _, m := range metas {
		data, err := src.Read(m.Path)
		if err != nil {
			logger.Warn("catalog: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		res, err := parser.Parse(data)
		if err != nil {
			logger.Warn("catalog: parse failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if !res.HasTag(layout.Tag) {
			continue
		}

		pages := 0
		for _, h := range res.Headings {
			if strings.HasPrefix(h, prefix) {
				pages++
			}
		}
		out = append(out, Entry{
			Path:            m.Path,
			Title:           res.String("title"),
			TranslatedTitle: res.String("translatedTitle"),
			Author:          res.String("author"),
			Pages:           pages,
			Checksum:        m.Checksum,
			UpdatedAt:       m.UpdatedAt,
		})
	}
	return out, nil
}
