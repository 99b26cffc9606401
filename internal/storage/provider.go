// Package storage defines the vault file-system abstraction.
package storage

import (
	"context"

	"github.com/starford/fansub/internal/models"
)

// Provider is the interface for vault file operations.
type Provider interface {
	// Nodes returns every folder and document under the vault root in walk
	// order. The root itself and hidden entries are omitted.
	Nodes(ctx context.Context) ([]models.Node, error)
	// Create writes content to a new file at path. It fails with
	// apperr.ErrAlreadyExists when path is taken.
	Create(ctx context.Context, path string, content []byte) error
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
}
