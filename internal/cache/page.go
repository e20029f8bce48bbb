// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered section HTML.
// A section renders to two documents, the full page and the HTMX
// fragment, and each is cached under its own key so repeated tab
// switches skip highlighting and template execution entirely.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ormtutor/internal/section"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages rendered-section caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// SectionKey returns the cache key for a section rendered as a full
// page or as an HTMX fragment.
func SectionKey(id section.ID, fragment bool) string {
	kind := "full"
	if fragment {
		kind = "fragment"
	}
	return "section:" + id.String() + ":" + kind
}

// Get retrieves cached HTML for a key. A miss and a Valkey error both
// report false; errors are logged and the caller renders afresh.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateSection removes both renderings of one section.
func (pc *PageCache) InvalidateSection(ctx context.Context, id section.ID) {
	keys := []string{
		pageKeyPrefix + SectionKey(id, false),
		pageKeyPrefix + SectionKey(id, true),
	}
	if err := pc.client.Unlink(ctx, keys...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "section", id.String(), "error", err)
		return
	}
	slog.Debug("page cache invalidated", "section", id.String())
}

// InvalidateAll removes all cached pages by scanning for the prefix.
// Used after the curriculum changes, since the navigation bar of every
// page may be affected.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Unlink(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}
