// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ormtutor/internal/cache"
	"ormtutor/internal/config"
	"ormtutor/internal/content"
	"ormtutor/internal/store"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Load section documents into the database",
	Long: `Validates each YAML section document and stores it, keeping the
previous version as a revision. Unchanged documents are skipped. The
cached pages of updated sections are dropped when Valkey is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		setupLogger(os.Stderr, cfg.LogLevel, false)

		docs := make([]*content.Section, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			s, err := content.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs = append(docs, s)
		}

		out := cmd.OutOrStdout()
		if importDryRun {
			for i, s := range docs {
				fmt.Fprintf(out, "%s: ok (%s, %d cards)\n", args[i], s.ID, len(s.Cards))
			}
			return nil
		}

		if !cfg.StoreEnabled() {
			return errors.New("import needs a database: set POSTGRES_HOST")
		}
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		var pageCache *cache.PageCache
		if cfg.CacheEnabled() {
			client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				slog.Warn("valkey unavailable, cached pages expire on their own", "error", err)
			} else {
				defer client.Close()
				pageCache = cache.NewPageCache(client, cfg.PageCacheTTL)
			}
		}

		sections := store.NewSectionStore(db)
		for i, s := range docs {
			updated, err := sections.Upsert(ctx, s)
			if err != nil {
				return fmt.Errorf("%s: %w", args[i], err)
			}
			if !updated {
				fmt.Fprintf(out, "%s: %s unchanged\n", args[i], s.ID)
				continue
			}
			if pageCache != nil {
				pageCache.InvalidateSection(ctx, s.ID)
			}
			fmt.Fprintf(out, "%s: %s updated\n", args[i], s.ID)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate the files without storing them")
	rootCmd.AddCommand(importCmd)
}
