package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const createKeyValueTable = `CREATE TABLE IF NOT EXISTS storefront_kv (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type PostgresKeyValueRepository struct {
	db *sql.DB
}

func NewPostgresKeyValueRepository(db *sql.DB) *PostgresKeyValueRepository {
	return &PostgresKeyValueRepository{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (r *PostgresKeyValueRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, createKeyValueTable)
	return err
}

func (r *PostgresKeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM storefront_kv WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	return value, err
}

func (r *PostgresKeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (r *PostgresKeyValueRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM storefront_kv WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, key)
	return err
}
