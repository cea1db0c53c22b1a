package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"engmarket/orchestrator/pkg/models"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Record persists one telemetry event.
func (s *PostgresStore) Record(ctx context.Context, event *models.TelemetryEvent) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal event metadata: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO telemetry_events (id, event_type, tool_id, session_id, user_id, success, latency_ms, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.Type, event.ToolID, event.SessionID, event.UserID,
		event.Success, event.LatencyMS, metadata, event.Timestamp)
	return err
}

// SavePipeline upserts a pipeline run with its full step trail as JSONB.
func (s *PostgresStore) SavePipeline(ctx context.Context, pipeline *models.WorkflowPipeline) error {
	steps, err := json.Marshal(pipeline.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline steps: %w", err)
	}
	metadata, err := json.Marshal(pipeline.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline metadata: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO pipeline_runs (id, name, description, status, current_step_index, steps, metadata, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			current_step_index = EXCLUDED.current_step_index,
			steps = EXCLUDED.steps,
			metadata = EXCLUDED.metadata,
			completed_at = EXCLUDED.completed_at`,
		pipeline.ID, pipeline.Name, pipeline.Description, pipeline.Status,
		pipeline.CurrentStepIndex, steps, metadata, pipeline.CreatedAt, pipeline.CompletedAt)
	return err
}

// GetPipeline retrieves a pipeline run by id.
func (s *PostgresStore) GetPipeline(ctx context.Context, id string) (*models.WorkflowPipeline, error) {
	var (
		pipeline models.WorkflowPipeline
		steps    []byte
		metadata []byte
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, status, current_step_index, steps, metadata, created_at, completed_at
		 FROM pipeline_runs WHERE id = $1`, id).
		Scan(&pipeline.ID, &pipeline.Name, &pipeline.Description, &pipeline.Status,
			&pipeline.CurrentStepIndex, &steps, &metadata, &pipeline.CreatedAt, &pipeline.CompletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(steps, &pipeline.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pipeline steps: %w", err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &pipeline.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pipeline metadata: %w", err)
		}
	}
	return &pipeline, nil
}

// ListEvents returns the most recent events for a session, newest first.
func (s *PostgresStore) ListEvents(ctx context.Context, sessionID string, limit int) ([]*models.TelemetryEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, event_type, tool_id, session_id, user_id, success, latency_ms, metadata, created_at
		 FROM telemetry_events WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.TelemetryEvent
	for rows.Next() {
		var (
			event    models.TelemetryEvent
			metadata []byte
		)
		if err := rows.Scan(&event.ID, &event.Type, &event.ToolID, &event.SessionID,
			&event.UserID, &event.Success, &event.LatencyMS, &metadata, &event.Timestamp); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event metadata: %w", err)
			}
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
