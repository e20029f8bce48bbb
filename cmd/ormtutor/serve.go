// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ormtutor/internal/cache"
	"ormtutor/internal/config"
	"ormtutor/internal/content"
	"ormtutor/internal/handlers"
	"ormtutor/internal/middleware"
	"ormtutor/internal/render"
	"ormtutor/internal/router"
	"ormtutor/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutorial over HTTP",
	Long: `Starts the web server. Pages are rendered from PostgreSQL when
POSTGRES_HOST is set, falling back to the embedded curriculum, and
cached in Valkey when VALKEY_HOST is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Text logs in development, JSON everywhere else.
	setupLogger(os.Stdout, cfg.LogLevel, !cfg.IsDev())

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreEnabled(),
		"cache", cfg.CacheEnabled(),
	)

	lib, err := content.Embedded()
	if err != nil {
		return err
	}
	var source content.Source = lib
	if cfg.StoreEnabled() {
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		source = content.Chain{store.NewSectionStore(db), lib}
	} else {
		slog.Warn("postgres not configured, serving the embedded curriculum")
	}

	// L2 page cache (rendered HTML in Valkey), optional.
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connect to valkey: %w", err)
		}
		defer client.Close()
		pageCache = cache.NewPageCache(client, cfg.PageCacheTTL)
		// Templates ship in the binary, so pages cached by a previous
		// build are stale.
		pageCache.InvalidateAll(ctx)
	} else {
		slog.Warn("valkey not configured, page cache disabled")
	}

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		return fmt.Errorf("initialize template renderer: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute, nil)
		limiter.TrustProxy = cfg.TrustProxy
	}

	r := router.New(
		handlers.NewSite(source, renderer, pageCache, cfg.DefaultSection),
		handlers.NewAPI(source),
		router.Options{
			Limiter:     limiter,
			CORSOrigins: cfg.CORSAllowedOrigins,
			Logger:      slog.Default(),
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
