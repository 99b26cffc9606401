// Package settings persists the plugin-scoped settings record.
package settings

import (
	"context"

	"github.com/starford/fansub/internal/models"
)

// Store loads and saves the settings record.
type Store interface {
	// Load returns the persisted settings, or models.DefaultSettings when
	// nothing has been saved yet.
	Load(ctx context.Context) (models.Settings, error)
	// Save replaces the persisted settings with s.
	Save(ctx context.Context, s models.Settings) error
}

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)
