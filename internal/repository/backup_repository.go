package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BackupRepository persists the serialized roster blob under a single key.
type BackupRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, payload string) error
}

type backupRepository struct {
	pool *pgxpool.Pool
}

// NewBackupRepository instantiates repository. A nil pool yields a repository
// that holds nothing, for deployments without a backup database.
func NewBackupRepository(pool *pgxpool.Pool) BackupRepository {
	return &backupRepository{pool: pool}
}

func (r *backupRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if r.pool == nil {
		return "", false, nil
	}
	const query = `SELECT payload FROM roster_backup WHERE backup_key=$1`
	var payload string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (r *backupRepository) Set(ctx context.Context, key, payload string) error {
	if r.pool == nil {
		return nil
	}
	const query = `
        INSERT INTO roster_backup (backup_key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (backup_key) DO UPDATE SET payload=EXCLUDED.payload, updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query, key, payload)
	return err
}
