package models

import (
	"time"
)

// StepStatus is the lifecycle status of a single workflow step
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// PipelineStatus is the overall status of a workflow pipeline
type PipelineStatus string

const (
	PipelineRunning   PipelineStatus = "running"
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
	PipelinePaused    PipelineStatus = "paused"
)

// WorkflowStep is one element of a pipeline. Steps are created pending when a
// pipeline is built and mutated in place by the executor; they are never
// removed, so a finished pipeline doubles as its own audit trail.
type WorkflowStep struct {
	ID          string                 `json:"id"`
	ToolID      string                 `json:"tool_id"`
	Action      string                 `json:"action"`
	Inputs      map[string]interface{} `json:"inputs"`
	Outputs     map[string]interface{} `json:"outputs,omitempty"`
	Status      StepStatus             `json:"status"`
	Error       string                 `json:"error,omitempty"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	TokensUsed  int                    `json:"tokens_used,omitempty"`
	CostUSD     float64                `json:"cost_usd,omitempty"`
}

// WorkflowPipeline is an ordered, stateful sequence of tool invocations.
// CurrentStepIndex is monotonically non-decreasing; the pipeline is
// completed iff CurrentStepIndex == len(Steps) and no step failed.
type WorkflowPipeline struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Steps            []*WorkflowStep        `json:"steps"`
	CurrentStepIndex int                    `json:"current_step_index"`
	Status           PipelineStatus         `json:"status"`
	CreatedAt        time.Time              `json:"created_at"`
	CompletedAt      *time.Time             `json:"completed_at,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

// WorkflowTemplate predefines a canonical tool sequence for a common use case.
type WorkflowTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ToolIDs     []string `json:"tool_ids"`
}
