// Package main is the entry point for the ORM tutorial. It serves the
// tutorial over HTTP, browses it in the terminal, and manages the
// section documents stored in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ormtutor",
	Short: "A four-part SQLAlchemy and FastAPI database tutorial",
	Long: `ormtutor presents a database tutorial in four sections: theory, setup,
CRUD and advanced. Read it in a browser with "ormtutor serve" or in the
terminal with "ormtutor browse". Every code sample can be copied.

Configuration comes from the environment (APP_PORT, POSTGRES_HOST,
VALKEY_HOST, LOG_LEVEL, ...). Without POSTGRES_HOST the embedded
curriculum is used as is.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
