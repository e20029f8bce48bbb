// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"ormtutor/internal/database"
	"ormtutor/internal/section"
)

// testDSN returns the PostgreSQL connection string for testing.
// Defaults match the config package defaults.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "ormtutor")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "ormtutor")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB connects to the test database and migrates it. The test is
// skipped when PostgreSQL is not reachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// preserveSection snapshots the stored row for id and restores it, with
// its revision history, when the test finishes.
func preserveSection(t *testing.T, db *sql.DB, id section.ID) {
	t.Helper()
	ctx := context.Background()

	var doc string
	err := db.QueryRowContext(ctx, `SELECT document FROM tutorial_sections WHERE slug = $1`, id.String()).Scan(&doc)
	existed := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("snapshot %s: %v", id, err)
	}

	var revisions []string
	rows, err := db.QueryContext(ctx, `SELECT id::text FROM tutorial_section_revisions WHERE slug = $1`, id.String())
	if err != nil {
		t.Fatalf("snapshot revisions %s: %v", id, err)
	}
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err == nil {
			revisions = append(revisions, r)
		}
	}
	rows.Close()

	t.Cleanup(func() {
		db.Exec(`DELETE FROM tutorial_section_revisions WHERE slug = $1 AND NOT (id::text = ANY($2))`, id.String(), revisions)
		if existed {
			db.Exec(`UPDATE tutorial_sections SET document = $2 WHERE slug = $1`, id.String(), doc)
		} else {
			db.Exec(`DELETE FROM tutorial_sections WHERE slug = $1`, id.String())
		}
	})
}
