// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"
	"log/slog"

	"ormtutor/internal/section"
)

// Source provides section documents. *Library and the database store
// implement it.
type Source interface {
	Section(ctx context.Context, id section.ID) (*Section, error)
}

// Chain tries each source in order and returns the first document
// found. A failing source is logged and skipped, so the embedded
// library placed last keeps the site up when the database is down.
type Chain []Source

// Section implements Source.
func (c Chain) Section(ctx context.Context, id section.ID) (*Section, error) {
	var lastErr error
	for i, src := range c {
		s, err := src.Section(ctx, id)
		if err == nil {
			return s, nil
		}
		if i < len(c)-1 {
			slog.Warn("content source failed, trying next", "section", id.String(), "source", i, "error", err)
		}
		lastErr = err
	}
	if lastErr == nil {
		return nil, fmt.Errorf("%w: %s (no sources)", ErrNotFound, id)
	}
	return nil, lastErr
}

// Tabs builds the navigation bar from src in tab order.
func Tabs(ctx context.Context, src Source) ([]Tab, error) {
	tabs := make([]Tab, 0, len(section.All()))
	for _, id := range section.All() {
		s, err := src.Section(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("tab %s: %w", id, err)
		}
		tabs = append(tabs, s.Tab())
	}
	return tabs, nil
}
