package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ormtutor/internal/config"
	"ormtutor/internal/content"
)

var exportCmd = &cobra.Command{
	Use:   "export SECTION",
	Short: "Print a section document as YAML",
	Long: `Prints the document currently served for SECTION. The output is a
valid input for import, so it is the usual starting point for edits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSection(args[0])
		if err != nil {
			return err
		}
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

		s, err := src.Section(cmd.Context(), id)
		if err != nil {
			return err
		}
		data, err := content.Marshal(s)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
