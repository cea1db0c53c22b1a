package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema holds the DDL for the orchestration tables. Applied by the seed
// command and by integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS telemetry_events (
	id          UUID PRIMARY KEY,
	event_type  TEXT NOT NULL,
	tool_id     TEXT,
	session_id  TEXT,
	user_id     TEXT,
	success     BOOLEAN NOT NULL DEFAULT false,
	latency_ms  BIGINT NOT NULL DEFAULT 0,
	metadata    JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_telemetry_events_session
	ON telemetry_events (session_id, created_at DESC);

CREATE TABLE IF NOT EXISTS pipeline_runs (
	id                 UUID PRIMARY KEY,
	name               TEXT NOT NULL,
	description        TEXT,
	status             TEXT NOT NULL,
	current_step_index INT NOT NULL DEFAULT 0,
	steps              JSONB NOT NULL,
	metadata           JSONB,
	created_at         TIMESTAMPTZ NOT NULL,
	completed_at       TIMESTAMPTZ
);
`

// EnsureSchema applies the orchestration DDL. Statements are idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
