package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/pulse-analytics/pkg/config"
	"github.com/angelmondragon/pulse-analytics/pkg/enums"
	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
	"github.com/angelmondragon/pulse-analytics/pkg/metrics"
)

const outcomeOK = "ok"

// Request is a Query plus the data source to answer it from. An empty Source
// falls back to the service default.
type Request struct {
	Query
	Source string
}

// Service answers analytics requests for the HTTP layer and the CLI.
type Service interface {
	// Query runs the pipeline against the requested source.
	Query(ctx context.Context, req Request) (*Payload, error)
	// Prompt returns the instruction that would be sent for q without calling a model.
	Prompt(q Query) (string, error)
}

type ServiceParams struct {
	// Model is the generative-language collaborator; nil disables the model source.
	Model         ModelFunc
	DefaultSource string
	ModelTimeout  time.Duration
	StrictPayload bool
	Metrics       *metrics.PipelineMetrics
	Logger        *logger.Logger
}

type service struct {
	pipelines     map[string]*Pipeline
	defaultSource string
	timeout       time.Duration
	metrics       *metrics.PipelineMetrics
	logg          *logger.Logger
}

// NewService builds an analytics service with a pipeline per available source.
func NewService(params ServiceParams) (Service, error) {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	defaultSource := normalizeSource(params.DefaultSource)
	if defaultSource == "" {
		defaultSource = config.SourceSample
	}

	s := &service{
		defaultSource: defaultSource,
		timeout:       params.ModelTimeout,
		metrics:       params.Metrics,
		logg:          logg,
	}

	opts := []Option{WithObserver(s.observe), WithStrictPayload(params.StrictPayload)}
	s.pipelines = map[string]*Pipeline{
		config.SourceSample: NewPipeline(SampleModel, opts...),
	}
	if params.Model != nil {
		s.pipelines[config.SourceModel] = NewPipeline(params.Model, opts...)
	}

	if !enums.AnalyticsSource(defaultSource).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown default analytics source").
			WithDetails(map[string]any{"source": params.DefaultSource})
	}
	if _, ok := s.pipelines[defaultSource]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "default analytics source has no model configured").
			WithDetails(map[string]any{"source": defaultSource})
	}
	return s, nil
}

func (s *service) Query(ctx context.Context, req Request) (*Payload, error) {
	source := normalizeSource(req.Source)
	if source == "" {
		source = s.defaultSource
	}

	pipeline, err := s.pipelineFor(source)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithSource(ctx, source)
	if company := strings.TrimSpace(req.Company); company != "" {
		ctx = s.logg.WithCompany(ctx, company)
	}

	// The model call is the only blocking step; bound it here, at the boundary.
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	payload, err := pipeline.Run(runCtx, req.Query)
	s.metrics.ObserveDuration(source, time.Since(start))

	if err != nil {
		code := pkgerrors.CodeOf(err)
		s.metrics.IncOutcome(source, string(code))
		logCtx := s.logg.WithField(ctx, "error_code", code)
		if code == pkgerrors.CodeMissingIdentifier {
			s.logg.Warn(logCtx, "analytics.pipeline.rejected")
		} else {
			s.logg.Error(logCtx, "analytics.pipeline.failed", err)
		}
		return nil, err
	}

	s.metrics.IncOutcome(source, outcomeOK)
	s.logg.Info(s.logg.WithField(ctx, "points", len(payload.Sales)), "analytics.pipeline.succeeded")
	return payload, nil
}

func (s *service) Prompt(q Query) (string, error) {
	if err := ValidateQuery(q); err != nil {
		return "", err
	}
	return ComposePrompt(q), nil
}

func (s *service) pipelineFor(source string) (*Pipeline, error) {
	if !enums.AnalyticsSource(source).IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown analytics source").
			WithDetails(map[string]any{"source": source})
	}
	pipeline, ok := s.pipelines[source]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "analytics model is not configured").
			WithDetails(map[string]any{"source": source})
	}
	return pipeline, nil
}

func (s *service) observe(ctx context.Context, t Transition) {
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"from": t.From.String(),
		"to":   t.To.String(),
	}), "analytics.pipeline.transition")
}

func normalizeSource(source string) string {
	return strings.ToLower(strings.TrimSpace(source))
}
