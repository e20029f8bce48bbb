package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"ormtutor/internal/clipboard"
	"ormtutor/internal/config"
	"ormtutor/internal/tui"
)

var browseSection string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Read the tutorial in the terminal",
	Long: `Opens the tutorial in a full-screen terminal browser. Switch tabs with
1-4 or h/l, move between code snippets with n/N and copy the focused
one with c. Copies go through the terminal clipboard (OSC 52), which
works over SSH and inside tmux.

The browser owns the screen, so logs go to ORMTUTOR_LOG_FILE or nowhere.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseSection, "section", "s", "", "section to open first: "+sectionNames())
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := setupLogger(logOut, cfg.LogLevel, false)

	initial := cfg.DefaultSection
	if browseSection != "" {
		if initial, err = parseSection(browseSection); err != nil {
			return err
		}
	}

	source, release, err := readerSource(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer release()

	model := tui.New(tui.Options{
		Source:    source,
		Clipboard: clipboard.NewTerminal(),
		Initial:   initial,
		Profile:   termenv.EnvColorProfile(),
		Logger:    logger,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	} else {
		model.Close()
	}
	if err != nil {
		slog.Error("terminal browser failed", "error", err)
		return err
	}
	return nil
}
