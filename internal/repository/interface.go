// Package repository persists telemetry events and pipeline-run audit
// records.
package repository

import (
	"context"

	"engmarket/orchestrator/pkg/models"
)

// Store is the persistence interface for the orchestration layer. Record
// doubles as the telemetry.Sink implementation.
type Store interface {
	// Record persists one telemetry event.
	Record(ctx context.Context, event *models.TelemetryEvent) error
	// SavePipeline upserts a pipeline run, including its full step trail.
	SavePipeline(ctx context.Context, pipeline *models.WorkflowPipeline) error
	// GetPipeline retrieves a pipeline run by id.
	GetPipeline(ctx context.Context, id string) (*models.WorkflowPipeline, error)
	// ListEvents returns the most recent events for a session, newest first.
	ListEvents(ctx context.Context, sessionID string, limit int) ([]*models.TelemetryEvent, error)
}
