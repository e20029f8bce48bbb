// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Most tests run against the embedded curriculum; the page cache tests
// are skipped when Valkey is unavailable.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"ormtutor/internal/cache"
	"ormtutor/internal/content"
	"ormtutor/internal/render"
	"ormtutor/internal/section"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testEnv bundles a routed handler set over one content source.
type testEnv struct {
	Site    *Site
	API     *API
	Handler http.Handler
}

func newTestEnv(t *testing.T, src content.Source, pc *cache.PageCache) *testEnv {
	t.Helper()

	if src == nil {
		lib, err := content.Embedded()
		if err != nil {
			t.Fatalf("embedded curriculum: %v", err)
		}
		src = lib
	}
	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Site: NewSite(src, rn, pc, section.Default),
		API:  NewAPI(src),
	}
	r := chi.NewRouter()
	r.Get("/", env.Site.Home)
	r.Get("/sections/{section}", env.Site.Section)
	r.Get("/api/sections", env.API.Sections)
	r.Get("/api/sections/{section}", env.API.Section)
	env.Handler = r
	return env
}

// get performs a request against the routed handlers.
func (e *testEnv) get(t *testing.T, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.Handler.ServeHTTP(rec, req)
	return rec
}

// testPageCache returns a page cache on Valkey DB 15, skipping the test
// when Valkey is unreachable.
func testPageCache(t *testing.T) *cache.PageCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	pc := cache.NewPageCache(client, 0)
	pc.InvalidateAll(ctx)
	t.Cleanup(func() {
		pc.InvalidateAll(ctx)
		client.Close()
	})
	return pc
}

// brokenSource fails every lookup.
type brokenSource struct{}

func (brokenSource) Section(context.Context, section.ID) (*content.Section, error) {
	return nil, errors.New("database is down")
}
