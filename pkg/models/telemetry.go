package models

import (
	"time"
)

// EventType enumerates the telemetry events emitted by the orchestration
// layer
type EventType string

const (
	EventToolInvoked       EventType = "tool_invoked"
	EventPermissionDenied  EventType = "permission_denied"
	EventHandoff           EventType = "handoff"
	EventWorkflowStarted   EventType = "workflow_started"
	EventWorkflowStep      EventType = "workflow_step"
	EventWorkflowCompleted EventType = "workflow_completed"
	EventWorkflowFailed    EventType = "workflow_failed"
	EventContextTransfer   EventType = "context_transferred"
)

// TelemetryEvent is a structured, fire-and-forget audit record. Sinks that
// fail to persist one must never abort the caller's primary operation.
type TelemetryEvent struct {
	ID        string                 `json:"id" db:"id"`
	Type      EventType              `json:"type" db:"event_type"`
	ToolID    string                 `json:"tool_id,omitempty" db:"tool_id"`
	SessionID string                 `json:"session_id,omitempty" db:"session_id"`
	UserID    string                 `json:"user_id,omitempty" db:"user_id"`
	Success   bool                   `json:"success" db:"success"`
	LatencyMS int64                  `json:"latency_ms,omitempty" db:"latency_ms"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	Timestamp time.Time              `json:"timestamp" db:"created_at"`
}
