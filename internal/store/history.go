package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gobench/internal/benchmark"
)

// History keeps archived snapshots of generated benchmark groups.
type History interface {
	Save(ctx context.Context, slug string, group benchmark.BenchmarkGroup) (Snapshot, error)
	List(ctx context.Context, limit int) ([]Snapshot, error)
	Latest(ctx context.Context, slug string) (Snapshot, error)
	Close() error
}

// Snapshot is one archived group. Group is only populated by Latest.
type Snapshot struct {
	ID              int64                     `json:"id"`
	Slug            string                    `json:"slug"`
	Name            string                    `json:"name"`
	Fastest         string                    `json:"fastest"`
	Implementations int                       `json:"implementations"`
	Variations      int                       `json:"variations"`
	CreatedAt       time.Time                 `json:"created_at"`
	Group           *benchmark.BenchmarkGroup `json:"group,omitempty"`
}

// Config selects the history backend.
type Config struct {
	Type string // "sqlite" or "postgres"
	DSN  string // File path for SQLite, DSN for Postgres
}

// DefaultSQLitePath is used when no DSN is configured for SQLite.
const DefaultSQLitePath = ".gobench.db"

// IsPostgres reports whether typ names the Postgres backend.
func IsPostgres(typ string) bool {
	switch strings.ToLower(typ) {
	case "postgres", "postgresql":
		return true
	}
	return false
}

// NewHistory creates the History for cfg. An empty SQLite DSN falls back to
// DefaultSQLitePath; Postgres requires one.
func NewHistory(cfg Config) (History, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresHistory(cfg.DSN)
	case "sqlite", "sqlite3", "":
		if cfg.DSN == "" {
			cfg.DSN = DefaultSQLitePath
		}
		return NewSQLiteHistory(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

// queries holds the dialect specific statements of a sqlHistory.
type queries struct {
	migrate []string
	insert  string
	list    string
	latest  string
}

// sqlHistory is the database/sql implementation shared by both backends.
type sqlHistory struct {
	db *sql.DB
	q  queries
}

func (h *sqlHistory) migrateSchema() error {
	for _, query := range h.q.migrate {
		if _, err := h.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (h *sqlHistory) Close() error {
	return h.db.Close()
}

// Save archives group under slug.
func (h *sqlHistory) Save(ctx context.Context, slug string, group benchmark.BenchmarkGroup) (Snapshot, error) {
	content, err := json.Marshal(group)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to marshal group: %w", err)
	}

	snap := Snapshot{
		Slug:            slug,
		Name:            group.Name,
		Implementations: len(group.Benchmarks),
		Variations:      group.VariationCount(),
		CreatedAt:       time.Now().UTC(),
	}
	if extremes, err := benchmark.FastestAndSlowest(group.Benchmarks, benchmark.Baseline("")); err == nil {
		snap.Fastest = extremes.Fastest
	}

	err = h.db.QueryRowContext(ctx, h.q.insert,
		snap.Slug, snap.Name, snap.Fastest, snap.Implementations, snap.Variations, string(content), snap.CreatedAt,
	).Scan(&snap.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

// List returns the most recent snapshots of all groups, newest first.
func (h *sqlHistory) List(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := h.db.QueryContext(ctx, h.q.list, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Slug, &s.Name, &s.Fastest, &s.Implementations, &s.Variations, &s.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// Latest returns the newest snapshot of slug including the archived group.
func (h *sqlHistory) Latest(ctx context.Context, slug string) (Snapshot, error) {
	var s Snapshot
	var content string
	err := h.db.QueryRowContext(ctx, h.q.latest, slug).Scan(
		&s.ID, &s.Slug, &s.Name, &s.Fastest, &s.Implementations, &s.Variations, &s.CreatedAt, &content,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot of %s: %w", slug, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, err
	}

	var group benchmark.BenchmarkGroup
	if err := json.Unmarshal([]byte(content), &group); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot %d: %w", s.ID, err)
	}
	s.Group = &group
	return s, nil
}
