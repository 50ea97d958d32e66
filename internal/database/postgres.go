package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"emkaan/api/internal/config"
)

// NewPostgresPool opens the connection pool backing every repository and
// verifies connectivity before returning it.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	applyPoolConfig(poolConfig, cfg)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return pool, nil
}

// applyPoolConfig maps the configured sizing knobs onto pgxpool, clamping
// nonsensical values instead of failing startup.
func applyPoolConfig(poolConfig *pgxpool.Config, cfg config.PostgresConfig) {
	maxOpen := cfg.MaxOpen
	if maxOpen < 1 {
		maxOpen = 1
	}
	maxIdle := cfg.MaxIdle
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	if maxIdle < 0 {
		maxIdle = 0
	}

	poolConfig.MaxConns = int32(maxOpen)
	poolConfig.MinConns = int32(maxIdle)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "cms-api"
}
