// Package database tests cover PostgreSQL connection, migration and
// seeding. These are integration tests that require a running PostgreSQL
// instance and are skipped without one.
package database

import (
	"context"
	"os"
	"strings"
	"testing"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "ormtutor")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "ormtutor")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func TestConnect(t *testing.T) {
	db, err := Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	// Verify connection pool settings.
	if db.Stats().MaxOpenConnections != maxOpenConns {
		t.Errorf("max open conns: got %d, want %d", db.Stats().MaxOpenConnections, maxOpenConns)
	}

	if err := db.Ping(); err != nil {
		t.Errorf("ping failed after Connect: %v", err)
	}
}

func TestConnectErrors(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"malformed", "postgres://%zz", "parse dsn"},
		{"unreachable", "postgres://ormtutor:x@127.0.0.1:1/ormtutor?sslmode=disable&connect_timeout=1", "ping 127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Connect(context.Background(), tt.dsn)
			if err == nil {
				db.Close()
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestMigrate(t *testing.T) {
	db, err := Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := Migrate(ctx, db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	// The schema is current now, so nothing runs the second time.
	applied, err := Migrate(ctx, db)
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Migrate applied %d migrations, want 0", applied)
	}

	for _, table := range []string{"tutorial_sections", "tutorial_section_revisions"} {
		var exists bool
		err := db.QueryRow(
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		if err != nil {
			t.Errorf("check table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("expected table %s to exist after migration", table)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := embedMigrations.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}
}
