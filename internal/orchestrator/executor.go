package orchestrator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"engmarket/orchestrator/internal/dispatch"
	"engmarket/orchestrator/pkg/models"
)

// StepCallback is invoked after each step completes successfully.
type StepCallback func(step *models.WorkflowStep)

// ExecuteWorkflow runs the pipeline's steps strictly in order, one at a
// time, starting at CurrentStepIndex; completed steps are never re-run. The
// pipeline is mutated in place and returned. Execution stops at the first
// failure; a top-level panic also forces the pipeline to failed and is not
// rethrown. Callers must not share one pipeline across simultaneous
// executions: no internal guard serializes them.
func (o *Orchestrator) ExecuteWorkflow(ctx context.Context, pipeline *models.WorkflowPipeline, sessionID string, onStep StepCallback) *models.WorkflowPipeline {
	ctx, span := o.tracer.Start(ctx, "orchestrator.ExecuteWorkflow")
	defer span.End()
	span.SetAttributes(
		attribute.String("pipeline.id", pipeline.ID),
		attribute.Int("pipeline.steps", len(pipeline.Steps)),
	)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("workflow execution panicked",
				"pipeline_id", pipeline.ID, "panic", r)
			o.finishFailed(ctx, pipeline, sessionID)
		}
	}()

	started := time.Now()
	pipeline.Status = models.PipelineRunning

	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventWorkflowStarted,
		SessionID: sessionID,
		Success:   true,
		Metadata: map[string]interface{}{
			"pipeline_id": pipeline.ID,
			"steps":       len(pipeline.Steps),
			"start_index": pipeline.CurrentStepIndex,
		},
	})

	for pipeline.CurrentStepIndex < len(pipeline.Steps) {
		step := pipeline.Steps[pipeline.CurrentStepIndex]
		if !o.runStep(ctx, pipeline, step, sessionID) {
			o.finishFailed(ctx, pipeline, sessionID)
			return pipeline
		}
		if onStep != nil {
			onStep(step)
		}
		o.carryContext(ctx, pipeline, step, sessionID)
		pipeline.CurrentStepIndex++
	}

	now := time.Now()
	pipeline.Status = models.PipelineCompleted
	pipeline.CompletedAt = &now
	o.metrics.ObservePipeline(string(models.PipelineCompleted))
	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventWorkflowCompleted,
		SessionID: sessionID,
		Success:   true,
		LatencyMS: time.Since(started).Milliseconds(),
		Metadata: map[string]interface{}{
			"pipeline_id":     pipeline.ID,
			"steps_completed": len(pipeline.Steps),
		},
	})
	return pipeline
}

// runStep executes one step and reports whether the loop may continue.
func (o *Orchestrator) runStep(ctx context.Context, pipeline *models.WorkflowPipeline, step *models.WorkflowStep, sessionID string) bool {
	start := time.Now()
	step.Status = models.StepRunning
	step.StartedAt = &start

	tool, ok := o.registry.Get(step.ToolID)
	if !ok {
		o.failStep(step, "Tool not found")
		return false
	}

	invokeCtx := ctx
	if o.stepTimeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, o.stepTimeout)
		defer cancel()
	}

	result, err := o.invoker.Invoke(invokeCtx, &dispatch.Invocation{
		Tool:      tool,
		Action:    step.Action,
		Inputs:    step.Inputs,
		SessionID: sessionID,
	})
	elapsed := time.Since(start)

	o.metrics.ObserveInvocation(tool.ID, err == nil, tokensOf(result), costOf(result), elapsed)
	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventToolInvoked,
		ToolID:    tool.ID,
		SessionID: sessionID,
		Success:   err == nil,
		LatencyMS: elapsed.Milliseconds(),
		Metadata: map[string]interface{}{
			"pipeline_id": pipeline.ID,
			"action":      step.Action,
		},
	})

	if err != nil {
		o.failStep(step, err.Error())
		return false
	}

	end := time.Now()
	step.Outputs = result.Outputs
	step.TokensUsed = result.TokensUsed
	step.CostUSD = result.CostUSD
	step.Status = models.StepCompleted
	step.CompletedAt = &end

	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventWorkflowStep,
		ToolID:    tool.ID,
		SessionID: sessionID,
		Success:   true,
		LatencyMS: elapsed.Milliseconds(),
		Metadata: map[string]interface{}{
			"pipeline_id": pipeline.ID,
			"step_index":  pipeline.CurrentStepIndex,
		},
	})
	return true
}

// carryContext copies the source tool's declared carry fields from the
// finished step's outputs into the next step's inputs. Fields absent from
// the outputs are silently skipped; nothing else ever crosses over.
func (o *Orchestrator) carryContext(ctx context.Context, pipeline *models.WorkflowPipeline, step *models.WorkflowStep, sessionID string) {
	next := pipeline.CurrentStepIndex + 1
	if next >= len(pipeline.Steps) {
		return
	}
	tool, ok := o.registry.Get(step.ToolID)
	if !ok || !tool.ContextSwitch.PreserveState {
		return
	}

	nextStep := pipeline.Steps[next]
	var moved []string
	for _, field := range tool.ContextSwitch.CarryInputs {
		value, present := step.Outputs[field]
		if !present {
			continue
		}
		if nextStep.Inputs == nil {
			nextStep.Inputs = make(map[string]interface{})
		}
		nextStep.Inputs[field] = value
		moved = append(moved, field)
	}
	if len(moved) == 0 {
		return
	}

	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventContextTransfer,
		ToolID:    step.ToolID,
		SessionID: sessionID,
		Success:   true,
		Metadata: map[string]interface{}{
			"pipeline_id": pipeline.ID,
			"to_tool_id":  nextStep.ToolID,
			"fields":      moved,
		},
	})
}

func (o *Orchestrator) failStep(step *models.WorkflowStep, msg string) {
	now := time.Now()
	step.Status = models.StepFailed
	step.Error = msg
	step.CompletedAt = &now
}

func (o *Orchestrator) finishFailed(ctx context.Context, pipeline *models.WorkflowPipeline, sessionID string) {
	now := time.Now()
	pipeline.Status = models.PipelineFailed
	pipeline.CompletedAt = &now
	o.metrics.ObservePipeline(string(models.PipelineFailed))
	o.emitter.Emit(ctx, &models.TelemetryEvent{
		Type:      models.EventWorkflowFailed,
		SessionID: sessionID,
		Success:   false,
		Metadata: map[string]interface{}{
			"pipeline_id":  pipeline.ID,
			"failed_index": pipeline.CurrentStepIndex,
			"error":        stepError(pipeline),
		},
	})
}

func stepError(pipeline *models.WorkflowPipeline) string {
	if pipeline.CurrentStepIndex < len(pipeline.Steps) {
		return pipeline.Steps[pipeline.CurrentStepIndex].Error
	}
	return ""
}

func tokensOf(r *dispatch.Result) int {
	if r == nil {
		return 0
	}
	return r.TokensUsed
}

func costOf(r *dispatch.Result) float64 {
	if r == nil {
		return 0
	}
	return r.CostUSD
}
