package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresHistory implements History using PostgreSQL
type PostgresHistory struct {
	sqlHistory
}

var postgresQueries = queries{
	migrate: []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id SERIAL PRIMARY KEY,
			slug TEXT NOT NULL,
			name TEXT NOT NULL,
			fastest TEXT NOT NULL DEFAULT '',
			implementations INTEGER NOT NULL,
			variations INTEGER NOT NULL,
			content JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_slug ON snapshots (slug, created_at);`,
	},
	insert: `INSERT INTO snapshots (slug, name, fastest, implementations, variations, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
	list: `SELECT id, slug, name, fastest, implementations, variations, created_at
		FROM snapshots ORDER BY created_at DESC, id DESC LIMIT $1`,
	latest: `SELECT id, slug, name, fastest, implementations, variations, created_at, content
		FROM snapshots WHERE slug = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
}

// NewPostgresHistory connects to dsn and applies migrations
func NewPostgresHistory(dsn string) (*PostgresHistory, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &PostgresHistory{sqlHistory{db: db, q: postgresQueries}}
	if err := h.migrateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return h, nil
}
