package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/starford/fansub/internal/models"
)

// DefaultDataPath is the vault-relative location of the JSON settings file.
const DefaultDataPath = ".fansub/data.json"

// ReadWriter is the subset of storage.Provider the file store needs.
type ReadWriter interface {
	Read(path string) ([]byte, error)
	Write(path string, content []byte) error
}

// FileStore keeps settings as a JSON object inside the vault.
type FileStore struct {
	rw   ReadWriter
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store writing to path (relative to the vault root).
func NewFileStore(rw ReadWriter, path string) *FileStore {
	if path == "" {
		path = DefaultDataPath
	}
	return &FileStore{rw: rw, path: path}
}

// Load reads the settings file. Keys missing from the file keep their defaults.
func (s *FileStore) Load(ctx context.Context) (models.Settings, error) {
	out := models.DefaultSettings()
	if err := ctx.Err(); err != nil {
		return out, err
	}
	data, err := s.rw.Read(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("settings: load: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return models.DefaultSettings(), fmt.Errorf("settings: decode %s: %w", s.path, err)
	}
	return out, nil
}

// Save writes the settings file atomically.
func (s *FileStore) Save(ctx context.Context, st models.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := s.rw.Write(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}
