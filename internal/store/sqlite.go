package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteHistory implements History using SQLite
type SQLiteHistory struct {
	sqlHistory
}

var sqliteQueries = queries{
	migrate: []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			fastest TEXT NOT NULL DEFAULT '',
			implementations INTEGER NOT NULL,
			variations INTEGER NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_slug ON snapshots (slug, created_at);`,
	},
	insert: `INSERT INTO snapshots (slug, name, fastest, implementations, variations, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
	list: `SELECT id, slug, name, fastest, implementations, variations, created_at
		FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?`,
	latest: `SELECT id, slug, name, fastest, implementations, variations, created_at, content
		FROM snapshots WHERE slug = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
}

// NewSQLiteHistory opens the SQLite database at path and applies migrations
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &SQLiteHistory{sqlHistory{db: db, q: sqliteQueries}}
	if err := h.migrateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return h, nil
}
