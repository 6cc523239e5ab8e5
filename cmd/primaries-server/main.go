// Package main provides the entry point for the 2018 primaries server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	// A missing .env is fine; config falls back to real environment vars.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "primaries-server",
		Short: "Aggregates and rebroadcasts 2018 primary election results",
		Long: "primaries-server polls the Associated Press elections API and the " +
			"Express-News results spreadsheet, reconciles both into one snapshot, " +
			"and pushes it to websocket subscribers on a fixed interval.",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newFetchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
