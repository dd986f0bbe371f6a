package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// CacheRepository is a cache.Backend over the client_cache table.
type CacheRepository struct {
	DB *sql.DB
}

func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{
		DB: db,
	}
}

func (r *CacheRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT data FROM client_cache WHERE key = $1`
	var data []byte
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *CacheRepository) Store(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO client_cache (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, key, string(data))
	return err
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM client_cache WHERE key = $1`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
