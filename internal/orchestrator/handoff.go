package orchestrator

import (
	"context"
	"fmt"
	"time"

	"engmarket/orchestrator/pkg/models"
)

// HandoffToAgent transfers the declared subset of context fields from one
// tool to another outside of a pipeline. Handoffs are not restricted to the
// advisory chain list: a destination outside it is logged as
// non-recommended and proceeds anyway.
func (o *Orchestrator) HandoffToAgent(ctx context.Context, fromToolID, toToolID string, handoffContext map[string]interface{}, reason, userID string) (result *models.OrchestrationResult) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.HandoffToAgent")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("handoff panicked", "panic", r)
			result = failure(toToolID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	source, ok := o.registry.Get(fromToolID)
	if !ok {
		return failure(fromToolID, fmt.Sprintf("source tool not found: %s", fromToolID))
	}
	dest, ok := o.registry.Get(toToolID)
	if !ok {
		return failure(toToolID, fmt.Sprintf("destination tool not found: %s", toToolID))
	}

	recommended := false
	for _, id := range source.ChainableWith {
		if id == toToolID {
			recommended = true
			break
		}
	}
	if !recommended {
		o.logger.Warn("non-recommended handoff",
			"from_tool_id", fromToolID, "to_tool_id", toToolID)
	}
	o.metrics.ObserveHandoff(recommended)

	// Copy only declared carry fields that are actually present; everything
	// else is dropped so unrelated session state never leaks to the next tool.
	transferred := make(map[string]interface{})
	var fields []string
	for _, field := range source.ContextSwitch.CarryInputs {
		if value, present := handoffContext[field]; present {
			transferred[field] = value
			fields = append(fields, field)
		}
	}

	handoff := &models.AgentHandoff{
		FromToolID: fromToolID,
		ToToolID:   toToolID,
		Context:    transferred,
		Reason:     reason,
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
	}

	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventHandoff,
		ToolID:    fromToolID,
		UserID:    userID,
		Success:   true,
		Timestamp: handoff.Timestamp,
		Metadata: map[string]interface{}{
			"to_tool_id":  toToolID,
			"fields":      fields,
			"reason":      reason,
			"recommended": recommended,
		},
	})

	suggestions := make([]string, 0, len(dest.ChainableWith))
	for _, next := range o.registry.Chainable(dest.ID) {
		suggestions = append(suggestions, next.ID)
	}

	return &models.OrchestrationResult{
		Success:           true,
		ToolID:            dest.ID,
		ToolName:          dest.Name,
		Description:       dest.Description,
		Endpoint:          dest.Endpoint,
		TransferredFields: fields,
		Suggestions:       suggestions,
		Metadata: map[string]interface{}{
			"recommended": recommended,
		},
	}
}
