package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/fansub/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS plugin_data (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

const settingsKey = "settings"

// SQLiteStore keeps the settings record as a JSON blob in a key/value table.
type SQLiteStore struct {
	conn *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database and applies the schema.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("settings: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("settings: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("settings: apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Load returns the stored record or the defaults when the row is absent.
func (s *SQLiteStore) Load(ctx context.Context) (models.Settings, error) {
	out := models.DefaultSettings()
	var raw string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM plugin_data WHERE key = ?`, settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("settings: load: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return models.DefaultSettings(), fmt.Errorf("settings: decode: %w", err)
	}
	return out, nil
}

// Save upserts the record.
func (s *SQLiteStore) Save(ctx context.Context, st models.Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO plugin_data (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`, settingsKey, string(data))
	if err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
