// Package testutil provides shared test helpers for setting up vaults.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/starford/fansub/internal/settings"
	"github.com/starford/fansub/internal/storage"
)

// TestVault creates a temporary vault directory with a storage provider.
func TestVault(t *testing.T) (string, *storage.FS) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestSettings returns a file-backed settings store inside the given vault.
func TestSettings(t *testing.T, store *storage.FS) *settings.FileStore {
	t.Helper()
	return settings.NewFileStore(store, settings.DefaultDataPath)
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
