// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ormtutor/internal/config"
	"ormtutor/internal/content"
	"ormtutor/internal/database"
	"ormtutor/internal/section"
	"ormtutor/internal/store"
)

// setupLogger installs the default structured logger: JSON for
// machines, text for people.
func setupLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// openStore connects to PostgreSQL, applies migrations and seeds any
// section that has no stored document yet.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	docs, err := content.EmbeddedDocuments()
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := database.Seed(ctx, db, docs); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}
	return db, nil
}

// readerSource returns the source used by the read-only commands: the
// database first when configured and reachable, the embedded curriculum
// otherwise. The returned func releases the connection.
func readerSource(ctx context.Context, cfg *config.Config) (content.Source, func(), error) {
	lib, err := content.Embedded()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.StoreEnabled() {
		return lib, func() {}, nil
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		slog.Warn("database unavailable, using the embedded curriculum", "error", err)
		return lib, func() {}, nil
	}
	return content.Chain{store.NewSectionStore(db), lib}, func() { db.Close() }, nil
}

// parseSection resolves a section name given on the command line.
// Unlike the web pages, the CLI rejects unknown names.
func parseSection(name string) (section.ID, error) {
	id, ok := section.Parse(name)
	if !ok {
		return 0, fmt.Errorf("unknown section %q (want one of %s)", name, sectionNames())
	}
	return id, nil
}

func sectionNames() string {
	names := make([]string, 0, len(section.All()))
	for _, id := range section.All() {
		names = append(names, id.String())
	}
	return strings.Join(names, ", ")
}
