// Package bootstrap wires the analytics service from configuration for the
// API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/internal/gemini"
	"github.com/angelmondragon/pulse-analytics/pkg/config"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
	"github.com/angelmondragon/pulse-analytics/pkg/metrics"
)

// modelFactory lets tests swap the Gemini constructor.
type modelFactory func(ctx context.Context, cfg config.GeminiConfig) (analytics.ModelFunc, error)

func geminiModel(ctx context.Context, cfg config.GeminiConfig) (analytics.ModelFunc, error) {
	client, err := gemini.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.ModelFunc(), nil
}

// AnalyticsService builds the service. The model source is only wired when a
// Gemini API key is configured; reg may be nil to skip metrics.
func AnalyticsService(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) (analytics.Service, error) {
	return analyticsService(ctx, cfg, logg, reg, geminiModel)
}

func analyticsService(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer, newModel modelFactory) (analytics.Service, error) {
	var model analytics.ModelFunc
	if cfg.Gemini.Enabled() {
		fn, err := newModel(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("bootstrap gemini: %w", err)
		}
		model = fn
		if logg != nil {
			logg.Info(logg.WithField(ctx, "model", cfg.Gemini.Model), "analytics.model.configured")
		}
	}

	var pm *metrics.PipelineMetrics
	if reg != nil {
		pm = metrics.NewPipelineMetrics(reg)
	}

	return analytics.NewService(analytics.ServiceParams{
		Model:         model,
		DefaultSource: cfg.Analytics.Source(),
		ModelTimeout:  cfg.Analytics.ModelTimeout,
		StrictPayload: cfg.Analytics.StrictPayload,
		Metrics:       pm,
		Logger:        logg,
	})
}
