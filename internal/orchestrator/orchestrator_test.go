package orchestrator

import (
	"context"
	"errors"
	"sync"

	"engmarket/orchestrator/internal/dispatch"
	"engmarket/orchestrator/internal/logging"
	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/internal/telemetry"
	"engmarket/orchestrator/pkg/models"
)

// fakeInvoker returns canned results per tool id and records call order.
type fakeInvoker struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*dispatch.Result
	errs    map[string]error
}

func (f *fakeInvoker) Invoke(_ context.Context, inv *dispatch.Invocation) (*dispatch.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv.Tool.ID)
	f.mu.Unlock()

	if err, ok := f.errs[inv.Tool.ID]; ok {
		return nil, err
	}
	if r, ok := f.results[inv.Tool.ID]; ok {
		return r, nil
	}
	return &dispatch.Result{Outputs: map[string]interface{}{}}, nil
}

// captureSink collects every emitted event.
type captureSink struct {
	mu     sync.Mutex
	events []*models.TelemetryEvent
}

func (s *captureSink) Record(_ context.Context, ev *models.TelemetryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *captureSink) ofType(t models.EventType) []*models.TelemetryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.TelemetryEvent
	for _, ev := range s.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// failingSink always errors; panicSink always panics. Both must be survivable.
type failingSink struct{}

func (failingSink) Record(context.Context, *models.TelemetryEvent) error {
	return errors.New("sink unavailable")
}

type panicSink struct{}

func (panicSink) Record(context.Context, *models.TelemetryEvent) error {
	panic("sink exploded")
}

func newTestOrchestrator(inv dispatch.Invoker, sink telemetry.Sink) (*Orchestrator, *captureSink) {
	capture, _ := sink.(*captureSink)
	logger := logging.NewNop()
	return New(registry.DefaultCatalog(), inv, Options{
		Emitter: telemetry.NewEmitter(sink, logger),
		Logger:  logger,
	}), capture
}
