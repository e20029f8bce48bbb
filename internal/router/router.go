// Package router sets up all HTTP routes and middleware chains for the
// tutorial site: HTML section pages, the JSON API and static assets.
package router

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"

	"ormtutor/internal/handlers"
	"ormtutor/internal/middleware"
	"ormtutor/web"
)

// Options configures the optional parts of the router.
type Options struct {
	Limiter     *middleware.RateLimiter // nil disables rate limiting
	CORSOrigins []string                // origins allowed to call /api
	Logger      *slog.Logger            // request log; slog.Default() when nil
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(site *handlers.Site, api *handlers.API, opts Options) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecureHeaders)
	r.Use(gzipResponses)

	// Health check, never rate limited.
	r.Get("/health", healthHandler)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static directory missing: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}

		r.Get("/", site.Home)
		r.Get("/sections/{section}", site.Section)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: opts.CORSOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
			r.Get("/sections", api.Sections)
			r.Get("/sections/{section}", api.Section)
		})
	})

	return r
}

// gzipResponses compresses responses for clients that accept it.
func gzipResponses(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
