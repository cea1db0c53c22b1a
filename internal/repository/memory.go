package repository

import (
	"context"
	"fmt"
	"sync"

	"engmarket/orchestrator/pkg/models"
)

// MemoryStore is an in-process Store used when no database is configured
// and by handler tests. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	events    []*models.TelemetryEvent
	pipelines map[string]*models.WorkflowPipeline
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pipelines: make(map[string]*models.WorkflowPipeline),
	}
}

func (s *MemoryStore) Record(_ context.Context, event *models.TelemetryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) SavePipeline(_ context.Context, pipeline *models.WorkflowPipeline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines[pipeline.ID] = pipeline
	return nil
}

func (s *MemoryStore) GetPipeline(_ context.Context, id string) (*models.WorkflowPipeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pipeline, ok := s.pipelines[id]
	if !ok {
		return nil, fmt.Errorf("pipeline %s not found", id)
	}
	return pipeline, nil
}

func (s *MemoryStore) ListEvents(_ context.Context, sessionID string, limit int) ([]*models.TelemetryEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TelemetryEvent, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].SessionID == sessionID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}
