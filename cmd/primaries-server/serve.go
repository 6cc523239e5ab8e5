package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sa-express-news/2018-primaries-server/internal/ap"
	"github.com/sa-express-news/2018-primaries-server/internal/archive"
	"github.com/sa-express-news/2018-primaries-server/internal/broadcast"
	"github.com/sa-express-news/2018-primaries-server/internal/config"
	"github.com/sa-express-news/2018-primaries-server/internal/health"
	"github.com/sa-express-news/2018-primaries-server/internal/logger"
	"github.com/sa-express-news/2018-primaries-server/internal/lookup"
	"github.com/sa-express-news/2018-primaries-server/internal/metrics"
	"github.com/sa-express-news/2018-primaries-server/internal/scheduler"
	"github.com/sa-express-news/2018-primaries-server/internal/sheets"
	"github.com/sa-express-news/2018-primaries-server/internal/snapshot"
	"github.com/sa-express-news/2018-primaries-server/internal/source"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the polling and push server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildGenerator(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*snapshot.Generator, error) {
	tables := lookup.Default()
	log.Infof("Loaded lookup tables covering %d AP races", tables.RaceCount())

	httpClient := source.NewRateLimitedHTTPClient(source.HTTPClientConfig{
		Timeout:           cfg.APTimeout(),
		MaxRetries:        cfg.AP.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         cfg.AP.RateLimit,
		CircuitBreakerMax: cfg.AP.CircuitBreakerMax,
	}, log)

	apClient := ap.NewClient(httpClient, cfg.AP.APIKey, tables, log)

	sheetClient, err := sheets.NewClient(ctx, sheets.Credentials{
		ClientID:     cfg.Sheets.ClientID,
		ClientSecret: cfg.Sheets.ClientSecret,
		RefreshToken: cfg.Sheets.RefreshToken,
	}, cfg.Sheets.SpreadsheetID, cfg.Sheets.ReadRange, tables, log)
	if err != nil {
		return nil, err
	}

	return snapshot.NewGenerator(apClient, sheetClient, log), nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}

	hub := broadcast.NewHub(log)
	defer hub.Close()

	var (
		snapshotArchive *archive.Archive
		archiver        scheduler.Archiver
		archivePinger   health.ArchivePinger
	)
	if cfg.Archive.Enabled {
		snapshotArchive, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("failed to open snapshot archive: %w", err)
		}
		defer snapshotArchive.Close()
		archiver = snapshotArchive
		archivePinger = snapshotArchive
		log.Infof("Archiving snapshots to %s", cfg.Archive.Path)
	}

	sched := scheduler.New(generator, hub, archiver, cfg.AP.BootstrapURL, cfg.PollInterval(), log)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        cfg.Server.HealthPort,
		Logger:      log,
		Archive:     archivePinger,
		Snapshots:   hub,
	})
	if err := healthServer.Start(); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Infof("Metrics server listening on %s%s", addr, cfg.Metrics.Path)
			if err := http.ListenAndServe(addr, metricsMux); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	pushMux := http.NewServeMux()
	pushMux.Handle(cfg.Server.SocketPath, hub)
	pushServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           pushMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infof("Push server listening on :%d%s", cfg.Server.Port, cfg.Server.SocketPath)
		if err := pushServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Push server failed")
		}
	}()

	// First cycle runs immediately so subscribers aren't left waiting a full
	// interval for data. A failure here is not fatal; the scheduler retries.
	if err := sched.RunCycle(ctx); err != nil {
		log.WithError(err).Error("Initial snapshot cycle failed")
	}

	if err := sched.Schedule(); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutting down")

	if err := sched.Stop(); err != nil {
		log.WithError(err).Warn("Scheduler stop failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pushServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Push server shutdown failed")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Health server shutdown failed")
	}

	return nil
}
