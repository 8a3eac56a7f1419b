package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store on a single key/document table in PostgreSQL.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// PostgresConfig holds connection pool configuration for the document store.
type PostgresConfig struct {
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPostgresConfig returns sensible default pool configuration.
func DefaultPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		MaxConns:        10,
		MinConns:        2,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// NewPostgresStore opens a PostgreSQL-backed document store. It verifies
// connectivity with a ping and ensures the documents table exists.
func NewPostgresStore(ctx context.Context, connString string, config *PostgresConfig, logger zerolog.Logger) (Store, error) {
	if config == nil {
		config = DefaultPostgresConfig()
	}

	logger = logger.With().Str("store", "postgres").Logger()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConnLifetime = config.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = config.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure documents table: %w", err)
	}

	logger.Info().Msg("postgres document store ready")

	return &postgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

// Get retrieves the document stored under key.
func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM documents WHERE key = $1`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read document")
		return nil, fmt.Errorf("failed to read document %s: %w", key, err)
	}

	return value, nil
}

// Set upserts value under key.
func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO documents (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`

	_, err := s.pool.Exec(ctx, query, key, value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write document")
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("document written")

	return nil
}

// Delete removes the document stored under key.
func (s *postgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = $1`

	_, err := s.pool.Exec(ctx, query, key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete document")
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}

	return nil
}

// Close releases the connection pool.
func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
