package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVRepo is a Substrate backed by the SQLite kv table.
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new KVRepo. The kv table must already exist (see Migrate).
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Ping checks the database connection.
func (r *KVRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
