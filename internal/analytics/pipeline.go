package analytics

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
)

// ModelFunc invokes the generative-language collaborator and returns its raw
// text. Any error is reported as EXTERNAL_CALL_ERROR.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// State is a step of a single pipeline run.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateComposingPrompt
	StateAwaitingExternalResponse
	StateExtracting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateComposingPrompt:
		return "composing_prompt"
	case StateAwaitingExternalResponse:
		return "awaiting_external_response"
	case StateExtracting:
		return "extracting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transition is reported to an Observer on every state change. Err is set
// only when To is StateFailed.
type Transition struct {
	From State
	To   State
	Err  error
}

// Observer is called synchronously on every transition of a run.
type Observer func(ctx context.Context, t Transition)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver registers a callback for state transitions.
func WithObserver(obs Observer) Option {
	return func(p *Pipeline) {
		p.observe = obs
	}
}

// WithStrictPayload schema-checks the decoded payload.
func WithStrictPayload(strict bool) Option {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

// Pipeline runs validate -> compose -> call -> extract for one query at a
// time. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	call    ModelFunc
	observe Observer
	strict  bool
}

// NewPipeline returns a pipeline that sends prompts to call.
func NewPipeline(call ModelFunc, opts ...Option) *Pipeline {
	p := &Pipeline{call: call}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunAnalyticsPipeline runs a one-off pipeline for the given bounds.
func RunAnalyticsPipeline(ctx context.Context, company, from, to string, call ModelFunc) (*Payload, error) {
	return NewPipeline(call).Run(ctx, Query{Company: company, From: from, To: to})
}

// Run executes the pipeline once. There are no retries; callers re-issue a
// fresh query to try again.
func (p *Pipeline) Run(ctx context.Context, q Query) (*Payload, error) {
	run := &pipelineRun{ctx: ctx, observe: p.observe, state: StateIdle}

	run.move(StateValidating)
	if err := ValidateQuery(q); err != nil {
		return nil, run.fail(err)
	}

	run.move(StateComposingPrompt)
	prompt := ComposePrompt(q)

	if p.call == nil {
		return nil, run.fail(pkgerrors.New(pkgerrors.CodeExternalCall, "no analytics model configured"))
	}

	run.move(StateAwaitingExternalResponse)
	text, err := p.call(ctx, prompt)
	if err != nil {
		return nil, run.fail(externalCallError(err))
	}

	run.move(StateExtracting)
	extract := Extract
	if p.strict {
		extract = ExtractStrict
	}
	payload, err := extract(text)
	if err != nil {
		return nil, run.fail(err)
	}

	run.move(StateSucceeded)
	return payload, nil
}

func externalCallError(err error) error {
	msg := "analytics model request failed"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "analytics model request timed out"
	}
	return pkgerrors.Wrap(pkgerrors.CodeExternalCall, err, msg)
}

type pipelineRun struct {
	ctx     context.Context
	observe Observer
	state   State
}

func (r *pipelineRun) move(to State) {
	r.emit(Transition{From: r.state, To: to})
	r.state = to
}

func (r *pipelineRun) fail(err error) error {
	r.emit(Transition{From: r.state, To: StateFailed, Err: err})
	r.state = StateFailed
	return err
}

func (r *pipelineRun) emit(t Transition) {
	if r.observe != nil {
		r.observe(r.ctx, t)
	}
}
