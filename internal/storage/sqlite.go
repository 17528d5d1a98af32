// Package storage persists planner snapshots in a local SQLite database.
// Each (user, year) partition is one row: the whole snapshot is written
// after every mutation, never diffed.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/caderno/internal/common"
	"github.com/Veraticus/caderno/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements snapshot persistence using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the snapshot stored under the given partition key. It returns
// common.ErrNotFound when the partition has never been saved.
func (s *SQLiteStore) Load(ctx context.Context, key string) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	query := `
		SELECT data, schema_version
		FROM snapshots
		WHERE partition_key = ?`

	var (
		data    []byte
		version int
	)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data, &version)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("partition %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %q: %w", key, err)
	}

	slog.Debug("loaded snapshot", "partition", key, "schema_version", version)
	return &snap, nil
}

// Save writes the whole snapshot under the given partition key, replacing
// any prior row for that key.
func (s *SQLiteStore) Save(ctx context.Context, key string, snap *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil: %w", common.ErrInvalidInput)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (partition_key, schema_version, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(partition_key) DO UPDATE SET
			schema_version = excluded.schema_version,
			data = excluded.data,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, snap.SchemaVersion, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	slog.Debug("saved snapshot", "partition", key, "bytes", len(data))
	return nil
}

// ListPartitions returns the partition keys stored for a user, newest year
// first.
func (s *SQLiteStore) ListPartitions(ctx context.Context, user string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(user, "user"); err != nil {
		return nil, err
	}

	query := `
		SELECT partition_key
		FROM snapshots
		WHERE partition_key LIKE ?
		ORDER BY partition_key DESC`

	rows, err := s.db.QueryContext(ctx, query, user+"_%")
	if err != nil {
		return nil, fmt.Errorf("failed to query partitions: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan partition key: %w", err)
		}
		// LIKE has no way to anchor the year suffix; filter strays here.
		if strings.HasPrefix(key, user+"_") {
			keys = append(keys, key)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partitions: %w", err)
	}

	return keys, nil
}
