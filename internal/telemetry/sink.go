// Package telemetry provides fire-and-forget event recording for the
// orchestration layer.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"engmarket/orchestrator/internal/logging"
	"engmarket/orchestrator/pkg/models"
)

// Sink accepts discrete structured events. Implementations may persist,
// forward or drop them; callers never depend on the outcome.
type Sink interface {
	Record(ctx context.Context, event *models.TelemetryEvent) error
}

// Emitter wraps a Sink and enforces the fire-and-forget contract: a sink
// error (or panic) is logged and swallowed so it can never abort the
// caller's primary operation.
type Emitter struct {
	sink   Sink
	logger *logging.Logger
}

// NewEmitter creates an Emitter. A nil sink turns every Emit into a no-op.
func NewEmitter(sink Sink, logger *logging.Logger) *Emitter {
	return &Emitter{sink: sink, logger: logger}
}

// Emit stamps id/timestamp defaults and records the event.
func (e *Emitter) Emit(ctx context.Context, event *models.TelemetryEvent) {
	if e == nil || e.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && e.logger != nil {
			e.logger.Warn("telemetry sink panicked", "panic", r, "event_type", event.Type)
		}
	}()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := e.sink.Record(ctx, event); err != nil && e.logger != nil {
		e.logger.Warn("telemetry record failed", "event_type", event.Type, "error", err)
	}
}

// LoggerSink writes events to the application log. It is the default sink
// for development setups without a database.
type LoggerSink struct {
	logger *logging.Logger
}

// NewLoggerSink creates a LoggerSink.
func NewLoggerSink(logger *logging.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Record logs the event at info level.
func (s *LoggerSink) Record(_ context.Context, event *models.TelemetryEvent) error {
	s.logger.Info("telemetry event",
		"type", event.Type,
		"tool_id", event.ToolID,
		"session_id", event.SessionID,
		"success", event.Success,
		"latency_ms", event.LatencyMS,
	)
	return nil
}
