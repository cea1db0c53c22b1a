// Package orchestrator routes user intents to catalog tools and drives
// pipeline execution and agent handoffs.
package orchestrator

import (
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"engmarket/orchestrator/internal/dispatch"
	"engmarket/orchestrator/internal/intent"
	"engmarket/orchestrator/internal/logging"
	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/internal/telemetry"
	"engmarket/orchestrator/pkg/models"
)

// Orchestrator is the service behind every public orchestration operation.
// The registry is read-only and shared; pipelines are owned by their callers
// and mutated in place during execution.
type Orchestrator struct {
	registry    *registry.Registry
	parser      *intent.Parser
	invoker     dispatch.Invoker
	emitter     *telemetry.Emitter
	metrics     *telemetry.Metrics
	logger      *logging.Logger
	tracer      trace.Tracer
	stepTimeout time.Duration
}

// Options configures optional collaborators. Telemetry, metrics and logging
// default to no-ops when unset.
type Options struct {
	Emitter *telemetry.Emitter
	Metrics *telemetry.Metrics
	Logger  *logging.Logger
	// StepTimeout bounds one tool invocation during pipeline execution.
	// Zero keeps the original block-until-done behavior.
	StepTimeout time.Duration
}

// New creates an Orchestrator over the given catalog and action invoker.
func New(reg *registry.Registry, invoker dispatch.Invoker, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		registry:    reg,
		parser:      intent.NewParser(reg),
		invoker:     invoker,
		emitter:     opts.Emitter,
		metrics:     opts.Metrics,
		logger:      logger,
		tracer:      otel.Tracer("engmarket/orchestrator"),
		stepTimeout: opts.StepTimeout,
	}
}

// Registry exposes the read-only tool catalog.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// ParseIntent classifies a user message without routing it. A nil return is
// the normal "no tool matched" case.
func (o *Orchestrator) ParseIntent(message string, sctx *intent.Context) *models.IntentClassification {
	return o.parser.Parse(message, sctx)
}

func failure(toolID, msg string) *models.OrchestrationResult {
	return &models.OrchestrationResult{
		Success: false,
		ToolID:  toolID,
		Error:   msg,
	}
}
