// Package cli wires the askwind commands.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "askwind",
	Short: "Ask questions about the Northwind dataset in plain English",
	Long: `Askwind answers natural-language questions about a small Northwind-style
sales database. A language model plans each answer and calls registered
data-access tools; SQLite holds the data.

Run "askwind serve" for the web interface, "askwind chat" for an
interactive session, or "askwind demo" for a scripted tour.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
			return nil
		}
		// Load .env from the working directory when present.
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading configuration")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
