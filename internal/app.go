// Package internal wires configuration, storage and the note generator
// into the commands exposed by cmd/fansub.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/fansub/internal/dialog"
	"github.com/starford/fansub/internal/editor"
	"github.com/starford/fansub/internal/notegen"
	"github.com/starford/fansub/internal/noteservice"
	"github.com/starford/fansub/internal/settings"
	"github.com/starford/fansub/internal/storage"
)

// App holds the components shared by every command.
type App struct {
	cfg      *Config
	logger   *slog.Logger
	store    *storage.FS
	settings settings.Store
	closers  []io.Closer

	runDialog func(ctx context.Context, m dialog.Model) (dialog.Model, error)

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New validates the configuration, opens the vault and the settings store.
func New(opts ...Option) (*App, error) {
	a := &application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := a.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Logs go to stderr; stdout carries command output.
	logger := slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Debug("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("settings_backend", cfg.Settings.Backend),
		slog.String("settings_path", cfg.Settings.Path),
		slog.String("editor_mode", cfg.Editor.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
		stdin:  a.stdin,
		stdout: a.stdout,
		stderr: a.stderr,
	}
	app.runDialog = app.runTerminalDialog

	switch cfg.Settings.Backend {
	case settings.BackendSQLite:
		db, err := settings.OpenSQLite(cfg.Settings.Path)
		if err != nil {
			return nil, fmt.Errorf("init settings: %w", err)
		}
		app.settings = db
		app.closers = append(app.closers, db)
	default:
		app.settings = settings.NewFileStore(store, cfg.Settings.Path)
	}

	return app, nil
}

// Close releases the settings backend.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// configuredOpener builds the opener selected by editor.mode.
func (a *App) configuredOpener() (notegen.Opener, error) {
	switch a.cfg.Editor.Mode {
	case editor.ModeNone:
		return editor.Nop{}, nil
	case editor.ModeCommand:
		cmd, err := editor.NewCommand(a.cfg.Editor.Command, a.cfg.Editor.Args, a.store.Root())
		if err != nil {
			return nil, err
		}
		cmd.Stdin, cmd.Stdout, cmd.Stderr = a.stdin, a.stdout, a.stderr
		return cmd, nil
	default:
		return editor.URIPrinter{Vault: a.store.Root(), Out: a.stdout}, nil
	}
}

// service builds a note service whose generator opens notes with opener.
func (a *App) service(opener notegen.Opener) *noteservice.Service {
	gen := notegen.New(a.store, a.settings,
		notegen.WithLayout(a.cfg.Note.Layout()),
		notegen.WithOpener(opener),
		notegen.WithLogger(a.logger),
	)
	return noteservice.NewService(a.store, a.settings, gen, a.logger)
}
