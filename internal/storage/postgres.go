package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoelCyril/Pulso.ai/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	s := &PostgresStorage{pool: pool, logger: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStorage) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv_records (
		scope TEXT NOT NULL,
		key   TEXT NOT NULL,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (scope, key)
	)`)
	if err != nil {
		p.logger.Errorf("failed to create kv_records table: %v", err)
	}
	return err
}

func (p *PostgresStorage) Load(ctx context.Context, scope, key string) ([]byte, error) {
	row := p.pool.QueryRow(ctx, `SELECT value FROM kv_records WHERE scope = $1 AND key = $2`, scope, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to load %s/%s: %v", scope, key, err)
		return nil, err
	}
	return value, nil
}

func (p *PostgresStorage) Save(ctx context.Context, scope, key string, value []byte) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO kv_records (scope, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = now()`,
		scope, key, value)
	if err != nil {
		p.logger.Errorf("failed to save %s/%s: %v", scope, key, err)
		return err
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

var _ KV = (*PostgresStorage)(nil)
