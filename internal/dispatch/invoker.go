// Package dispatch invokes tool actions against their external endpoints.
package dispatch

import (
	"context"

	"engmarket/orchestrator/pkg/models"
)

// Invocation describes one tool action call.
type Invocation struct {
	Tool      *models.Tool
	Action    string
	Inputs    map[string]interface{}
	SessionID string
}

// Result carries the outputs of a tool action plus optional usage
// accounting. A tool that reports neither tokens nor cost leaves the fields
// at zero.
type Result struct {
	Outputs    map[string]interface{} `json:"outputs"`
	TokensUsed int                    `json:"tokens_used,omitempty"`
	CostUSD    float64                `json:"cost_usd,omitempty"`
}

// Invoker executes a tool action. Implementations resolve the tool's opaque
// endpoint reference; errors are returned to the caller and recorded, never
// retried here.
type Invoker interface {
	Invoke(ctx context.Context, inv *Invocation) (*Result, error)
}
