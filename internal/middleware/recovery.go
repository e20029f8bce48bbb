// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

// Recoverer turns a handler panic into a 500 response. JSON API paths get
// a JSON error body, pages get plain text. http.ErrAbortHandler is
// re-panicked so net/http drops the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFrom(r.Context()),
				"stack", string(debug.Stack()),
			)
			writePanicResponse(w, r)
		}()

		next.ServeHTTP(w, r)
	})
}

func writePanicResponse(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	// Drop anything the handler set before panicking.
	h.Del("ETag")
	h.Del("Content-Length")
	h.Set("Cache-Control", "no-store")

	if strings.HasPrefix(r.URL.Path, "/api/") {
		h.Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
