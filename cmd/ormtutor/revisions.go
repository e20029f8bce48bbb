package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ormtutor/internal/config"
	"ormtutor/internal/store"
)

var (
	revisionsLimit int
	revisionsShow  string
)

var revisionsCmd = &cobra.Command{
	Use:   "revisions SECTION",
	Short: "List the replaced versions of a section",
	Long: `Lists the documents an import replaced, newest first. With --show ID
the stored YAML of one revision is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseSection(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		setupLogger(os.Stderr, cfg.LogLevel, false)
		if !cfg.StoreEnabled() {
			return errors.New("revisions need a database: set POSTGRES_HOST")
		}

		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		revs := store.NewRevisionStore(db)
		out := cmd.OutOrStdout()

		if revisionsLimit < 1 {
			return fmt.Errorf("--limit must be positive, got %d", revisionsLimit)
		}

		if revisionsShow != "" {
			revID, err := uuid.Parse(revisionsShow)
			if err != nil {
				return fmt.Errorf("invalid revision id: %w", err)
			}
			rev, err := revs.FindByID(ctx, revID)
			if err != nil {
				return err
			}
			if rev == nil || rev.Section != id {
				return fmt.Errorf("revision %s not found for %s", revID, id)
			}
			_, err = fmt.Fprint(out, rev.Document)
			return err
		}

		list, err := revs.List(ctx, id, revisionsLimit)
		if err != nil {
			return err
		}
		total, err := revs.Count(ctx, id)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintf(out, "%s has no revisions\n", id)
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "REPLACED", "TITLE")
		for _, rev := range list {
			title := "(unreadable)"
			if s, err := rev.Parse(); err == nil {
				title = s.Title
			}
			t.Row(rev.ID.String(), rev.ReplacedAt.Local().Format(time.DateTime), title)
		}
		fmt.Fprintln(out, t.String())
		fmt.Fprintf(out, "%d of %d revisions\n", len(list), total)
		return nil
	},
}

func init() {
	revisionsCmd.Flags().IntVarP(&revisionsLimit, "limit", "n", 10, "maximum number of revisions to list")
	revisionsCmd.Flags().StringVar(&revisionsShow, "show", "", "print the document of one revision")
	rootCmd.AddCommand(revisionsCmd)
}
