// Package database opens the PostgreSQL pool that backs the section store,
// migrates its schema with goose and seeds it from the embedded curriculum.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Pool limits. The site is read-mostly and every request is one
// primary-key lookup, so a small pool suffices.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// pingTimeout bounds the reachability check in Connect.
const pingTimeout = 5 * time.Second

// Connect opens a pool for dsn and pings it. An unreachable server is an
// error, so callers can fall back to the embedded curriculum.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	db := stdlib.OpenDB(*cfg)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Host, err)
	}

	slog.Info("database connected", "host", cfg.Host, "database", cfg.Database)
	return db, nil
}

// Migrate applies pending migrations from the embedded SQL files and
// returns how many ran. An up-to-date schema is not an error.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("migrations dir: %w", err)
	}
	// The provider is not closed: Close would close db.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	for _, res := range results {
		slog.Info("migration applied",
			"version", res.Source.Version,
			"duration", res.Duration,
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return len(results), fmt.Errorf("goose version: %w", err)
	}
	slog.Info("database schema ready", "version", version, "applied", len(results))
	return len(results), nil
}
