package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engmarket/orchestrator/internal/dispatch"
	"engmarket/orchestrator/internal/telemetry"
	"engmarket/orchestrator/pkg/models"
)

func TestBuildPipelineSeedsOnlyFirstStep(t *testing.T) {
	p := BuildPipeline([]string{"project-charter", "wbs-builder"},
		map[string]interface{}{"x": 1}, "n", "d")

	require.Len(t, p.Steps, 2)
	assert.Equal(t, map[string]interface{}{"x": 1}, p.Steps[0].Inputs)
	assert.Empty(t, p.Steps[1].Inputs)
	assert.Equal(t, models.StepPending, p.Steps[0].Status)
	assert.Equal(t, models.StepPending, p.Steps[1].Status)
	assert.Equal(t, 0, p.CurrentStepIndex)
}

func TestTemplateLookup(t *testing.T) {
	tpl, ok := Template("full-project-planning")
	require.True(t, ok)
	assert.Equal(t, []string{"project-charter", "wbs-builder", "schedule-planner", "cost-estimator"}, tpl.ToolIDs)

	_, ok = Template("nope")
	assert.False(t, ok)

	p, ok := BuildFromTemplate("project-closeout", nil)
	require.True(t, ok)
	assert.Len(t, p.Steps, 2)
}

func TestExecuteWorkflowHappyPath(t *testing.T) {
	inv := &fakeInvoker{results: map[string]*dispatch.Result{
		"project-charter": {
			Outputs:    map[string]interface{}{"project_name": "Riyadh Tower", "charter": "...", "noise": true},
			TokensUsed: 120,
			CostUSD:    0.04,
		},
		"wbs-builder": {
			Outputs: map[string]interface{}{"wbs": []string{"1.0", "2.0"}},
		},
	}}
	o, sink := newTestOrchestrator(inv, &captureSink{})

	p := BuildPipeline([]string{"project-charter", "wbs-builder"}, map[string]interface{}{"scope": "tower"}, "n", "d")
	var completed []string
	got := o.ExecuteWorkflow(context.Background(), p, "session-1", func(s *models.WorkflowStep) {
		completed = append(completed, s.ToolID)
	})

	assert.Same(t, p, got)
	assert.Equal(t, models.PipelineCompleted, p.Status)
	assert.Equal(t, len(p.Steps), p.CurrentStepIndex)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, []string{"project-charter", "wbs-builder"}, inv.calls)
	assert.Equal(t, []string{"project-charter", "wbs-builder"}, completed)

	// Usage accounting lands on the step.
	assert.Equal(t, 120, p.Steps[0].TokensUsed)
	assert.Equal(t, 0.04, p.Steps[0].CostUSD)

	// Context transfer copies only declared carry fields present in outputs.
	assert.Equal(t, map[string]interface{}{
		"project_name": "Riyadh Tower",
		"charter":      "...",
	}, p.Steps[1].Inputs)

	assert.Len(t, sink.ofType(models.EventWorkflowStarted), 1)
	assert.Len(t, sink.ofType(models.EventWorkflowStep), 2)
	assert.Len(t, sink.ofType(models.EventWorkflowCompleted), 1)
	assert.Len(t, sink.ofType(models.EventContextTransfer), 1)
}

func TestExecuteWorkflowCarriesOnlyDeclaredFields(t *testing.T) {
	inv := &fakeInvoker{results: map[string]*dispatch.Result{
		"cost-estimator": {
			Outputs: map[string]interface{}{"estimate": 42.0, "extra": "x"},
		},
	}}
	o, _ := newTestOrchestrator(inv, &captureSink{})

	p := BuildPipeline([]string{"cost-estimator", "boq-generator"}, nil, "n", "d")
	o.ExecuteWorkflow(context.Background(), p, "s", nil)

	assert.Equal(t, map[string]interface{}{"estimate": 42.0}, p.Steps[1].Inputs)
	assert.NotContains(t, p.Steps[1].Inputs, "extra")
}

func TestExecuteWorkflowStopsOnFailure(t *testing.T) {
	inv := &fakeInvoker{errs: map[string]error{
		"wbs-builder": errors.New("upstream exploded"),
	}}
	o, sink := newTestOrchestrator(inv, &captureSink{})

	p := BuildPipeline([]string{"project-charter", "wbs-builder", "schedule-planner"}, nil, "n", "d")
	o.ExecuteWorkflow(context.Background(), p, "s", nil)

	assert.Equal(t, models.PipelineFailed, p.Status)
	assert.Equal(t, 1, p.CurrentStepIndex)
	assert.Equal(t, models.StepCompleted, p.Steps[0].Status)
	assert.Equal(t, models.StepFailed, p.Steps[1].Status)
	assert.Equal(t, "upstream exploded", p.Steps[1].Error)
	assert.Equal(t, models.StepPending, p.Steps[2].Status)
	// The third step never ran.
	assert.Equal(t, []string{"project-charter", "wbs-builder"}, inv.calls)

	failed := sink.ofType(models.EventWorkflowFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Metadata["failed_index"])
}

func TestExecuteWorkflowUnknownTool(t *testing.T) {
	inv := &fakeInvoker{}
	o, _ := newTestOrchestrator(inv, &captureSink{})

	p := BuildPipeline([]string{"ghost-tool"}, nil, "n", "d")
	o.ExecuteWorkflow(context.Background(), p, "s", nil)

	assert.Equal(t, models.PipelineFailed, p.Status)
	assert.Equal(t, models.StepFailed, p.Steps[0].Status)
	assert.Equal(t, "Tool not found", p.Steps[0].Error)
	assert.Empty(t, inv.calls)
}

func TestExecuteWorkflowResumesAtCurrentIndex(t *testing.T) {
	inv := &fakeInvoker{}
	o, _ := newTestOrchestrator(inv, &captureSink{})

	p := BuildPipeline([]string{"project-charter", "wbs-builder"}, nil, "n", "d")
	// Simulate a previously completed first step.
	p.Steps[0].Status = models.StepCompleted
	p.CurrentStepIndex = 1

	o.ExecuteWorkflow(context.Background(), p, "s", nil)

	assert.Equal(t, models.PipelineCompleted, p.Status)
	// Step 0 was not re-run.
	assert.Equal(t, []string{"wbs-builder"}, inv.calls)
}

func TestExecuteWorkflowCompletionInvariant(t *testing.T) {
	for name, inv := range map[string]*fakeInvoker{
		"all succeed": {},
		"one fails":   {errs: map[string]error{"wbs-builder": errors.New("boom")}},
	} {
		t.Run(name, func(t *testing.T) {
			o, _ := newTestOrchestrator(inv, &captureSink{})
			p := BuildPipeline([]string{"project-charter", "wbs-builder"}, nil, "n", "d")
			o.ExecuteWorkflow(context.Background(), p, "s", nil)

			anyFailed := false
			for _, s := range p.Steps {
				if s.Status == models.StepFailed {
					anyFailed = true
				}
			}
			completed := p.CurrentStepIndex == len(p.Steps) && !anyFailed
			assert.Equal(t, completed, p.Status == models.PipelineCompleted)
		})
	}
}

func TestExecuteWorkflowSurvivesBrokenSink(t *testing.T) {
	for name, sink := range map[string]telemetry.Sink{
		"erroring sink":  failingSink{},
		"panicking sink": panicSink{},
	} {
		t.Run(name, func(t *testing.T) {
			o, _ := newTestOrchestrator(&fakeInvoker{}, sink)
			p := BuildPipeline([]string{"project-charter"}, nil, "n", "d")
			o.ExecuteWorkflow(context.Background(), p, "s", nil)
			assert.Equal(t, models.PipelineCompleted, p.Status)
		})
	}
}
