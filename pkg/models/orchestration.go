package models

import (
	"time"
)

// ExtractedParams holds the coarse parameters pulled out of a user message.
// Extraction is best-effort: a zero value simply means nothing matched.
type ExtractedParams struct {
	ProjectName string    `json:"project_name,omitempty"`
	Numbers     []float64 `json:"numbers,omitempty"`
	Date        string    `json:"date,omitempty"`
}

// IsZero reports whether no parameter was extracted at all.
func (p ExtractedParams) IsZero() bool {
	return p.ProjectName == "" && len(p.Numbers) == 0 && p.Date == ""
}

// IntentClassification is the ephemeral result of matching one user message
// against the tool catalog. It is discarded after the caller acts on it.
type IntentClassification struct {
	ToolID       string          `json:"tool_id"`
	Confidence   float64         `json:"confidence"`
	Params       ExtractedParams `json:"params"`
	Alternatives []string        `json:"alternatives,omitempty"`
}

// OrchestrationResult is the structured outcome of every public orchestration
// operation. Failures carry a human-readable Error and the tool id that was
// attempted (or the generic fallback); they are reported conditions, never
// panics surfacing to the caller.
type OrchestrationResult struct {
	Success           bool                   `json:"success"`
	ToolID            string                 `json:"tool_id"`
	ToolName          string                 `json:"tool_name,omitempty"`
	Description       string                 `json:"description,omitempty"`
	Endpoint          string                 `json:"endpoint,omitempty"`
	DefaultPrompts    []string               `json:"default_prompts,omitempty"`
	Params            *ExtractedParams       `json:"params,omitempty"`
	Suggestions       []string               `json:"suggestions,omitempty"`
	TransferredFields []string               `json:"transferred_fields,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	Error             string                 `json:"error,omitempty"`
}

// AgentHandoff is a write-once record of a context transfer between two
// tools outside of pipeline execution. It is forwarded to telemetry and not
// otherwise retained by the orchestration layer.
type AgentHandoff struct {
	FromToolID string                 `json:"from_tool_id"`
	ToToolID   string                 `json:"to_tool_id"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Reason     string                 `json:"reason"`
	UserID     string                 `json:"user_id,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}
