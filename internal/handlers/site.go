// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the tutorial site and its JSON API.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/zeebo/xxh3"

	"ormtutor/internal/cache"
	"ormtutor/internal/content"
	"ormtutor/internal/render"
	"ormtutor/internal/section"
)

// Site renders tutorial sections as HTML. Full pages and HTMX fragments
// are cached separately in the optional Valkey page cache.
type Site struct {
	source    content.Source
	renderer  *render.Renderer
	pageCache *cache.PageCache
	home      section.ID
}

// NewSite creates the site handler group. pageCache may be nil when
// Valkey is not configured. home is the section shown at "/".
func NewSite(src content.Source, rn *render.Renderer, pageCache *cache.PageCache, home section.ID) *Site {
	if !home.Valid() {
		home = section.Default
	}
	return &Site{source: src, renderer: rn, pageCache: pageCache, home: home}
}

// Home renders the home section.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, s.home)
}

// Section renders the section named in the URL. Unknown names show the
// theory section rather than a 404, matching the tab bar's own fallback.
func (s *Site) Section(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	id, ok := section.Parse(name)
	if !ok {
		slog.Debug("unknown section requested, showing default", "section", name)
		id = section.ParseOrDefault(name)
	}
	s.serve(w, r, id)
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request, id section.ID) {
	ctx := r.Context()
	fragment := render.IsHTMX(r)
	key := cache.SectionKey(id, fragment)

	// Add, not Set: gzip has already added Accept-Encoding.
	w.Header().Add("Vary", "HX-Request, HX-History-Restore-Request")

	if s.pageCache != nil {
		if cached, ok := s.pageCache.Get(ctx, key); ok {
			writeHTML(w, r, cached)
			return
		}
	}

	page, err := s.page(r, id)
	if err != nil {
		slog.Error("load section failed", "section", id.String(), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body, err := s.renderer.Render(page, fragment)
	if err != nil {
		slog.Error("render section failed", "section", id.String(), "fragment", fragment, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if s.pageCache != nil {
		s.pageCache.Set(ctx, key, body)
	}
	writeHTML(w, r, body)
}

func (s *Site) page(r *http.Request, id section.ID) (*render.PageData, error) {
	tabs, err := content.Tabs(r.Context(), s.source)
	if err != nil {
		return nil, err
	}
	sec, err := s.source.Section(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return &render.PageData{Tabs: tabs, Active: id, Section: sec}, nil
}

// writeHTML writes body with a content-hash ETag, answering a matching
// If-None-Match with 304.
func writeHTML(w http.ResponseWriter, r *http.Request, body []byte) {
	tag := ETag(body)
	h := w.Header()
	h.Set("ETag", tag)
	h.Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

func etagMatches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}
