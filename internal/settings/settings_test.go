package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/storage"
)

func fileStore(t *testing.T) (*FileStore, *storage.FS) {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	require.NoError(t, err)
	return NewFileStore(fs, ""), fs
}

func sqliteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func stores(t *testing.T) map[string]Store {
	fs, _ := fileStore(t)
	return map[string]Store{
		BackendFile:   fs,
		BackendSQLite: sqliteStore(t),
	}
}

func TestLoadDefaultsOnFirstRun(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.RootFolder, got.LastSelectedFolder)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, models.Settings{LastSelectedFolder: "Manga"}))
			require.NoError(t, s.Save(ctx, models.Settings{LastSelectedFolder: "Manhwa"}))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Manhwa", got.LastSelectedFolder)
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	s, fs := fileStore(t)
	require.NoError(t, s.Save(context.Background(), models.Settings{LastSelectedFolder: "Manga"}))

	raw, err := fs.Read(DefaultDataPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastSelectedFolder":"Manga"}`, string(raw))
}

func TestFileStoreMissingKeyKeepsDefault(t *testing.T) {
	s, fs := fileStore(t)
	require.NoError(t, fs.Write(DefaultDataPath, []byte(`{}`)))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RootFolder, got.LastSelectedFolder)
}

func TestFileStoreCorrupt(t *testing.T) {
	s, fs := fileStore(t)
	require.NoError(t, fs.Write(DefaultDataPath, []byte(`{not json`)))

	got, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	s, err := OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, models.Settings{LastSelectedFolder: "Novels"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(dsn)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Novels", got.LastSelectedFolder)
}
