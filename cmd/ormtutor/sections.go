package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"ormtutor/internal/config"
	"ormtutor/internal/section"
)

var sectionsJSON bool

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the tutorial sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		setupLogger(os.Stderr, cfg.LogLevel, false)

		src, release, err := readerSource(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer release()

		rows := make([]sectionSummary, 0, len(section.All()))
		for _, id := range section.All() {
			s, err := src.Section(cmd.Context(), id)
			if err != nil {
				return err
			}
			rows = append(rows, sectionSummary{
				ID:       id,
				Title:    s.Title,
				Cards:    len(s.Cards),
				Snippets: len(s.Snippets()),
				Default:  id == cfg.DefaultSection,
			})
		}

		out := cmd.OutOrStdout()
		if sectionsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		fmt.Fprintln(out, sectionsTable(rows))
		return nil
	},
}

func init() {
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(sectionsCmd)
}

type sectionSummary struct {
	ID       section.ID `json:"id"`
	Title    string     `json:"title"`
	Cards    int        `json:"cards"`
	Snippets int        `json:"snippets"`
	Default  bool       `json:"default,omitempty"`
}

func sectionsTable(rows []sectionSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "SECTION", "TITLE", "CARDS", "SNIPPETS")
	for i, r := range rows {
		name := r.ID.String()
		if r.Default {
			name += " *"
		}
		t.Row(strconv.Itoa(i+1), name, r.Title, strconv.Itoa(r.Cards), strconv.Itoa(r.Snippets))
	}
	return t.String()
}
