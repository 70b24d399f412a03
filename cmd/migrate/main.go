package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/pkg/db"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

func main() {
	direction := flag.String("direction", string(db.DirectionUp), "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply; 0 applies all (down requires an explicit count)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dir := db.Direction(*direction)
	if dir != db.DirectionUp && dir != db.DirectionDown {
		logger.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}
	if dir == db.DirectionDown && *steps <= 0 {
		logger.Fatal("Rolling back requires -steps greater than zero")
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)),
		zap.String("direction", *direction),
		zap.Int("steps", *steps),
	)

	if err := db.Migrate(cfg.Database.URL, cfg.Database.CACertPath, cfg.Database.MigrationsPath, dir, *steps); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
