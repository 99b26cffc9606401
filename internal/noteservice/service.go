// Package noteservice coordinates the vault, the settings store and the
// note generator for every front end (CLI, HTTP, MCP).
package noteservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/starford/fansub/internal/apperr"
	"github.com/starford/fansub/internal/catalog"
	"github.com/starford/fansub/internal/folderindex"
	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/settings"
	"github.com/starford/fansub/internal/storage"
)

// FolderList is what a freshly opened dialog offers.
type FolderList struct {
	Folders  []string        `json:"folders"`
	Selected string          `json:"selected"`
	Settings models.Settings `json:"settings"`
}

// NoteInput is raw, unvalidated form input.
type NoteInput struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	TotalPages string `json:"totalPages"`
	// Folder defaults to the dialog's initial selection when empty.
	Folder string `json:"folder"`
}

// PagesText turns a decoded JSON page count back into form text. Numbers
// are printed without exponent so large counts survive page parsing.
func PagesText(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case json.Number:
		return n.String()
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprint(n)
	}
}

// Service coordinates storage, settings and generation.
type Service struct {
	store    storage.Provider
	settings settings.Store
	gen      *notegen.Generator
	logger   *slog.Logger
}

// NewService creates a new note service.
func NewService(store storage.Provider, st settings.Store, gen *notegen.Generator, logger *slog.Logger) *Service {
	return &Service{store: store, settings: st, gen: gen, logger: logger}
}

// Layout returns the layout notes are generated with.
func (s *Service) Layout() notegen.Layout {
	return s.gen.Layout()
}

// Folders recomputes the folder choices from the vault and picks the
// initial selection from the remembered folder. Unreadable settings fall
// back to the defaults with a warning.
func (s *Service) Folders(ctx context.Context) (*FolderList, error) {
	nodes, err := s.store.Nodes(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.settings.Load(ctx)
	if err != nil {
		s.logger.Warn("settings load failed, using defaults", slog.String("error", err.Error()))
		current = models.DefaultSettings()
	}
	choices := folderindex.Choices(nodes)
	return &FolderList{
		Folders:  choices,
		Selected: folderindex.InitialSelection(choices, current.LastSelectedFolder),
		Settings: current,
	}, nil
}

// Submit commits an already validated draft and returns without waiting
// for the note to be written.
func (s *Service) Submit(ctx context.Context, d models.Draft, current models.Settings) (*notegen.Pending, error) {
	_, pending, err := s.gen.Commit(ctx, d, current)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("note requested",
		slog.String("title", d.Title),
		slog.String("folder", d.Folder),
		slog.Int("pages", d.TotalPages))
	return pending, nil
}

// CreateNote validates raw input, commits it and waits for the note.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (models.Created, error) {
	list, err := s.Folders(ctx)
	if err != nil {
		return models.Created{}, err
	}
	folder := in.Folder
	if folder == "" {
		folder = list.Selected
	}
	d, err := notegen.NewDraft(in.Title, in.Author, in.TotalPages, folder)
	if err != nil {
		return models.Created{}, err
	}
	pending, err := s.Submit(ctx, d, list.Settings)
	if err != nil {
		return models.Created{}, err
	}
	return pending.Wait()
}

// ReadNote returns the raw Markdown of a vault note.
func (s *Service) ReadNote(_ context.Context, path string) ([]byte, error) {
	data, err := s.store.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, apperr.ErrNotFound)
	}
	return data, err
}

// Catalog lists generated notes under dir ("" for the whole vault).
func (s *Service) Catalog(_ context.Context, dir string) ([]catalog.Entry, error) {
	return catalog.Scan(s.store, dir, s.gen.Layout(), s.logger)
}
