package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/pkg/config"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
)

func baseConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{DefaultSource: config.SourceSample},
		Gemini:    config.GeminiConfig{Model: "gemini-2.0-flash"},
	}
}

func TestAnalyticsServiceWithoutKeyServesSample(t *testing.T) {
	called := false
	factory := func(context.Context, config.GeminiConfig) (analytics.ModelFunc, error) {
		called = true
		return nil, nil
	}

	svc, err := analyticsService(context.Background(), baseConfig(), logger.Nop(), prometheus.NewRegistry(), factory)
	require.NoError(t, err)
	assert.False(t, called)

	payload, err := svc.Query(context.Background(), analytics.Request{Query: analytics.Query{Company: "Acme"}})
	require.NoError(t, err)
	assert.Len(t, payload.Sales, 4)

	_, err = svc.Query(context.Background(), analytics.Request{Query: analytics.Query{Company: "Acme"}, Source: config.SourceModel})
	require.Error(t, err)
}

func TestAnalyticsServiceWiresModel(t *testing.T) {
	cfg := baseConfig()
	cfg.Gemini.APIKey = "key"
	cfg.Analytics.DefaultSource = config.SourceModel

	factory := func(context.Context, config.GeminiConfig) (analytics.ModelFunc, error) {
		return func(context.Context, string) (string, error) {
			return `{"sales":[],"revenue":1,"users":2}`, nil
		}, nil
	}

	svc, err := analyticsService(context.Background(), cfg, logger.Nop(), nil, factory)
	require.NoError(t, err)

	payload, err := svc.Query(context.Background(), analytics.Request{Query: analytics.Query{Company: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, payload.Revenue)
}

func TestAnalyticsServicePropagatesModelError(t *testing.T) {
	cfg := baseConfig()
	cfg.Gemini.APIKey = "key"
	factory := func(context.Context, config.GeminiConfig) (analytics.ModelFunc, error) {
		return nil, errors.New("bad key")
	}

	_, err := analyticsService(context.Background(), cfg, logger.Nop(), nil, factory)
	require.ErrorContains(t, err, "bad key")
}
