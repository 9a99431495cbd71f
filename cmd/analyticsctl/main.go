package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/internal/bootstrap"
	"github.com/angelmondragon/pulse-analytics/pkg/config"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), loadService, os.Args[1:], os.Stdout, os.Stderr))
}

// loadService builds the service from the environment. Logs go to stderr so
// stdout carries only the command output.
func loadService(ctx context.Context) (analytics.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logg := logger.New(logger.Options{
		ServiceName: "analyticsctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      "console",
		Output:      os.Stderr,
	})
	return bootstrap.AnalyticsService(ctx, cfg, logg, nil)
}
