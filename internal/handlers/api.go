// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ormtutor/internal/content"
	"ormtutor/internal/section"
)

// API serves the curriculum as JSON. Unlike the HTML pages it rejects
// unknown section names.
type API struct {
	source content.Source
}

// NewAPI creates the JSON API handler group.
func NewAPI(src content.Source) *API {
	return &API{source: src}
}

// Sections lists the navigation tabs in order.
func (a *API) Sections(w http.ResponseWriter, r *http.Request) {
	tabs, err := content.Tabs(r.Context(), a.source)
	if err != nil {
		slog.Error("list sections failed", "error", err)
		writeError(w, http.StatusInternalServerError, "sections unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": tabs})
}

// Section returns one section document.
func (a *API) Section(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	id, ok := section.Parse(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown section "+name)
		return
	}

	sec, err := a.source.Section(r.Context(), id)
	if err != nil {
		slog.Error("load section failed", "section", id.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "section unavailable")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
