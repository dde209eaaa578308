package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/novahq/nova-go/internal/database"
	"github.com/novahq/nova-go/internal/monitor"
	"github.com/novahq/nova-go/internal/sync"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "nova-sync",
		Usage:   "Nova transaction ledger sync service",
		Version: fmt.Sprintf("%s (build: %s, commit: %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/sync_config.yaml",
				Usage:   "config file path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Action: runSync,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSync(c *cli.Context) error {
	configPath := c.String("config")
	cfg, err := sync.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel := c.String("log-level"); logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger := monitor.NewLogger(cfg.Log.Level, cfg.Log.Output)

	logger.WithFields(map[string]interface{}{
		"config_file": configPath,
		"log_level":   cfg.Log.Level,
	}).Info("starting nova transaction sync service")

	db, err := database.New(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("database connected")

	syncService := sync.NewService(db, cfg, logger)

	if err := syncService.Start(); err != nil {
		return fmt.Errorf("failed to start sync service: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.WithFields(map[string]interface{}{
		"interval_seconds": cfg.Sync.IntervalSeconds,
		"page_size":        cfg.Sync.PageSize,
		"currencies":       cfg.Sync.Currencies,
		"accounts_count":   len(cfg.Sync.Accounts),
	}).Info("sync service running, press Ctrl+C to stop")

	<-sigChan
	logger.Info("shutdown signal received, stopping")

	syncService.Stop()

	return nil
}
