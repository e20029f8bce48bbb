package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"ormtutor/internal/content"
	"ormtutor/internal/section"
)

// Seed inserts the given section documents for every section that has
// no row yet. Existing rows are left alone, so edits made through the
// import command survive restarts. Documents are stored in canonical form,
// the form the store compares against on import. It returns how many rows
// were added.
func Seed(ctx context.Context, db *sql.DB, docs map[section.ID][]byte) (int, error) {
	inserted := 0
	for _, id := range section.All() {
		doc, ok := docs[id]
		if !ok {
			continue
		}
		doc, err := content.Canonical(doc)
		if err != nil {
			return inserted, fmt.Errorf("seed section %s: %w", id, err)
		}
		res, err := db.ExecContext(ctx, `
			INSERT INTO tutorial_sections (slug, document)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, id.String(), string(doc))
		if err != nil {
			return inserted, fmt.Errorf("seed section %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if inserted == 0 {
		slog.Info("database already seeded, skipping")
		return 0, nil
	}
	slog.Info("database seeded with embedded curriculum", "sections", inserted)
	return inserted, nil
}
