package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
	"github.com/angelmondragon/pulse-analytics/pkg/metrics"
)

func TestServiceSampleSource(t *testing.T) {
	svc, err := NewService(ServiceParams{})
	require.NoError(t, err)

	p, err := svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}})
	require.NoError(t, err)
	require.Len(t, p.Sales, 4)
	assert.Equal(t, "2025-01-01", p.Sales[0].Date)
	assert.Equal(t, 400.0, p.Sales[3].Value)
	assert.Equal(t, 10500.0, p.Revenue)
	assert.Equal(t, 2300.0, p.Users)
}

func TestServiceSampleStillRequiresCompany(t *testing.T) {
	svc, err := NewService(ServiceParams{})
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), Request{Source: "sample"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeMissingIdentifier))
}

func TestServiceModelSource(t *testing.T) {
	model := &stubModel{reply: acmeReply}
	svc, err := NewService(ServiceParams{Model: model.call, DefaultSource: "model"})
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}})
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls())

	_, err = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}, Source: " SAMPLE "})
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls(), "sample source must not reach the model")
}

func TestServiceSourceErrors(t *testing.T) {
	svc, err := NewService(ServiceParams{})
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}, Source: "model"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))

	_, err = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}, Source: "warehouse"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = NewService(ServiceParams{DefaultSource: "model"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))

	_, err = NewService(ServiceParams{DefaultSource: "warehouse"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestServiceAppliesModelTimeout(t *testing.T) {
	slow := func(ctx context.Context, _ string) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return acmeReply, nil
		}
	}
	svc, err := NewService(ServiceParams{Model: slow, DefaultSource: "model", ModelTimeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeExternalCall))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestServiceRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewPipelineMetrics(reg)
	model := &stubModel{reply: "{broken"}
	svc, err := NewService(ServiceParams{Model: model.call, Metrics: m})
	require.NoError(t, err)

	_, _ = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}})
	_, _ = svc.Query(context.Background(), Request{Query: Query{Company: "Acme"}, Source: "model"})
	_, _ = svc.Query(context.Background(), Request{Source: "model"})

	count, err := testutil.GatherAndCount(reg, "analytics_pipeline_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestServicePrompt(t *testing.T) {
	svc, err := NewService(ServiceParams{})
	require.NoError(t, err)

	prompt, err := svc.Prompt(Query{Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, ComposePrompt(Query{Company: "Acme"}), prompt)

	_, err = svc.Prompt(Query{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeMissingIdentifier))
}
