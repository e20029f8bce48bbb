// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL-backed curriculum: one YAML
// document per section plus the history of documents it replaced.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ormtutor/internal/content"
	"ormtutor/internal/section"
)

// SectionStore reads and writes section documents. It implements
// content.Source.
type SectionStore struct {
	db *sql.DB
}

// NewSectionStore creates a new SectionStore with the given database connection.
func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

var _ content.Source = (*SectionStore)(nil)

// SectionRow summarizes one stored section.
type SectionRow struct {
	ID        section.ID
	UpdatedAt time.Time
}

// Section loads and parses the document for id. It returns an error
// wrapping content.ErrNotFound when the row is missing.
func (s *SectionStore) Section(ctx context.Context, id section.ID) (*content.Section, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM tutorial_sections WHERE slug = $1
	`, id.String()).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", content.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find section %s: %w", id, err)
	}

	sec, err := content.Parse([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("stored section %s: %w", id, err)
	}
	if sec.ID != id {
		return nil, fmt.Errorf("stored section %s declares id %s", id, sec.ID)
	}
	return sec, nil
}

// List returns every stored section in tab order.
func (s *SectionStore) List(ctx context.Context) ([]SectionRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, updated_at FROM tutorial_sections
	`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	found := make(map[section.ID]time.Time)
	for rows.Next() {
		var slug string
		var updated time.Time
		if err := rows.Scan(&slug, &updated); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		id, ok := section.Parse(slug)
		if !ok {
			continue
		}
		found[id] = updated
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []SectionRow
	for _, id := range section.All() {
		if updated, ok := found[id]; ok {
			out = append(out, SectionRow{ID: id, UpdatedAt: updated})
		}
	}
	return out, nil
}

// Upsert validates and stores sec, keeping the replaced document as a
// revision. Storing an identical document is a no-op and reports false.
func (s *SectionStore) Upsert(ctx context.Context, sec *content.Section) (bool, error) {
	if err := sec.Validate(); err != nil {
		return false, err
	}
	doc, err := content.Marshal(sec)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert %s: %w", sec.ID, err)
	}
	defer tx.Rollback()

	var previous string
	err = tx.QueryRowContext(ctx, `
		SELECT document FROM tutorial_sections WHERE slug = $1 FOR UPDATE
	`, sec.ID.String()).Scan(&previous)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		previous = ""
	case err != nil:
		return false, fmt.Errorf("lock section %s: %w", sec.ID, err)
	case sameDocument(previous, doc):
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tutorial_sections (slug, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slug) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`, sec.ID.String(), string(doc)); err != nil {
		return false, fmt.Errorf("upsert section %s: %w", sec.ID, err)
	}

	if previous != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tutorial_section_revisions (id, slug, document)
			VALUES ($1, $2, $3)
		`, uuid.New(), sec.ID.String(), previous); err != nil {
			return false, fmt.Errorf("record revision %s: %w", sec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert %s: %w", sec.ID, err)
	}
	return true, nil
}

// sameDocument reports whether the stored document describes the same
// section as doc, which is in canonical form. Rows written before
// documents were canonicalized are compared after re-encoding.
func sameDocument(stored string, doc []byte) bool {
	if stored == string(doc) {
		return true
	}
	canon, err := content.Canonical([]byte(stored))
	return err == nil && bytes.Equal(canon, doc)
}
