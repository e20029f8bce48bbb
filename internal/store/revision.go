// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ormtutor/internal/content"
	"ormtutor/internal/section"
)

// Revision is a section document that was replaced by an import.
type Revision struct {
	ID         uuid.UUID
	Section    section.ID
	Document   string
	ReplacedAt time.Time
}

// Parse decodes the stored document.
func (r *Revision) Parse() (*content.Section, error) {
	return content.Parse([]byte(r.Document))
}

// RevisionStore provides access to replaced section documents.
type RevisionStore struct {
	db *sql.DB
}

// NewRevisionStore creates a new RevisionStore backed by the given database.
func NewRevisionStore(db *sql.DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// scanRevision scans a single tutorial_section_revisions row.
func scanRevision(scanner interface{ Scan(...any) error }) (*Revision, error) {
	var r Revision
	var slug string
	if err := scanner.Scan(&r.ID, &slug, &r.Document, &r.ReplacedAt); err != nil {
		return nil, err
	}
	id, ok := section.Parse(slug)
	if !ok {
		return nil, fmt.Errorf("revision %s: unknown section %q", r.ID, slug)
	}
	r.Section = id
	return &r, nil
}

// List returns up to limit revisions of a section, newest first.
func (s *RevisionStore) List(ctx context.Context, id section.ID, limit int) ([]*Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, document, replaced_at
		FROM tutorial_section_revisions
		WHERE slug = $1
		ORDER BY replaced_at DESC
		LIMIT $2
	`, id.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*Revision
	for rows.Next() {
		r, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// FindByID returns a single revision, or nil when it does not exist.
func (s *RevisionStore) FindByID(ctx context.Context, id uuid.UUID) (*Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, document, replaced_at
		FROM tutorial_section_revisions
		WHERE id = $1
	`, id)
	r, err := scanRevision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find revision: %w", err)
	}
	return r, nil
}

// Count returns the number of revisions of a section.
func (s *RevisionStore) Count(ctx context.Context, id section.ID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tutorial_section_revisions WHERE slug = $1
	`, id.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count revisions: %w", err)
	}
	return count, nil
}
