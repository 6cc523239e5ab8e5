package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sa-express-news/2018-primaries-server/internal/logger"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

// newFetchCmd builds a one-shot command that runs a single snapshot cycle
// and writes the result to stdout. Useful for smoke-testing credentials and
// lookup tables without standing up the push server.
func newFetchCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a single results snapshot and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	return cmd
}

func runFetch(pretty bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	generator, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}

	seed := models.Snapshot{NextAPRequestURL: cfg.AP.BootstrapURL}
	snap, err := generator.Generate(ctx, seed)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(snap)
}
