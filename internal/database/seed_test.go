package database

import (
	"context"
	"testing"

	"ormtutor/internal/content"
)

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if _, err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	docs, err := content.EmbeddedDocuments()
	if err != nil {
		t.Fatalf("EmbeddedDocuments: %v", err)
	}

	// We don't clear the table first because other test packages may be
	// running concurrently against the same database.
	if _, err := Seed(ctx, db, docs); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	n, err := Seed(ctx, db, docs)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if n != 0 {
		t.Errorf("second Seed inserted %d rows, want 0", n)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tutorial_sections").Scan(&count); err != nil {
		t.Fatalf("count sections: %v", err)
	}
	if count != 4 {
		t.Errorf("sections = %d, want 4", count)
	}
}
