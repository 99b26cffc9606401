package notegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/settings"
)

// DocumentStore creates documents in the workspace.
type DocumentStore interface {
	Create(ctx context.Context, path string, content []byte) error
}

// Opener asks the editor to open a freshly created note.
type Opener interface {
	Open(ctx context.Context, note models.Created) error
}

type nopOpener struct{}

func (nopOpener) Open(context.Context, models.Created) error { return nil }

// Option configures a Generator.
type Option func(*Generator)

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(g *Generator) {
		g.layout = l
	}
}

// WithOpener sets the editor opener called after a successful create.
func WithOpener(o Opener) Option {
	return func(g *Generator) {
		if o != nil {
			g.opener = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// Generator commits drafts: it remembers the folder, then creates and
// opens the note.
type Generator struct {
	docs     DocumentStore
	settings settings.Store
	opener   Opener
	layout   Layout
	logger   *slog.Logger
}

// New creates a Generator writing to docs and persisting to store.
func New(docs DocumentStore, store settings.Store, opts ...Option) *Generator {
	g := &Generator{
		docs:     docs,
		settings: store,
		opener:   nopOpener{},
		layout:   DefaultLayout(),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Layout returns the layout used for rendering.
func (g *Generator) Layout() Layout {
	return g.layout
}

// Commit records d.Folder in s and saves it, then starts creating the note
// in the background. The updated settings are returned whether or not the
// save succeeded. An invalid draft is rejected before anything is touched.
//
// The returned Pending completes once the note is created and the open
// request has been made; callers are free to not wait for it.
func (g *Generator) Commit(ctx context.Context, d models.Draft, s models.Settings) (models.Settings, *Pending, error) {
	if err := ValidateDraft(d); err != nil {
		return s, nil, err
	}

	s.LastSelectedFolder = d.Folder
	if err := g.settings.Save(ctx, s); err != nil {
		return s, nil, fmt.Errorf("notegen: save settings: %w", err)
	}

	note := models.Created{Path: g.layout.ResolvePath(d), Title: d.Title, Folder: d.Folder}
	content := []byte(g.layout.Render(d))

	p := newPending()
	go func() {
		defer close(p.done)
		if err := g.docs.Create(ctx, note.Path, content); err != nil {
			p.err = fmt.Errorf("notegen: create %s: %w", note.Path, err)
			g.logger.Error("note create failed",
				slog.String("path", note.Path),
				slog.String("error", err.Error()))
			return
		}
		p.note = note
		g.logger.Info("note created",
			slog.String("path", note.Path),
			slog.Int("pages", d.TotalPages))

		if err := g.opener.Open(ctx, note); err != nil {
			p.err = fmt.Errorf("notegen: open %s: %w", note.Path, err)
			g.logger.Warn("note open failed",
				slog.String("path", note.Path),
				slog.String("error", err.Error()))
		}
	}()

	return s, p, nil
}

// Pending is the outcome of an in-flight create.
type Pending struct {
	done chan struct{}
	note models.Created
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Done is closed once the create (and open, on success) has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the create finishes and returns its outcome. When the
// note was created but could not be opened, both the note and the error are
// returned.
func (p *Pending) Wait() (models.Created, error) {
	<-p.done
	return p.note, p.err
}
