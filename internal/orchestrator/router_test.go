package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/pkg/models"
)

func TestRouteIntentUnmatchedMessage(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeInvoker{}, &captureSink{})

	res := o.RouteIntent(context.Background(), "hello there", models.RoleClient, nil, "", nil)

	assert.False(t, res.Success)
	assert.Equal(t, registry.FallbackToolID, res.ToolID)
	assert.NotEmpty(t, res.Error)
}

func TestRouteIntentSuccess(t *testing.T) {
	o, sink := newTestOrchestrator(&fakeInvoker{}, &captureSink{})

	res := o.RouteIntent(context.Background(),
		"Create a project charter for Riyadh Tower",
		models.RoleEngineer, nil, models.PhaseConcept, nil)

	require.True(t, res.Success)
	assert.Equal(t, "project-charter", res.ToolID)
	assert.Equal(t, "Project Charter Generator", res.ToolName)
	assert.NotEmpty(t, res.Endpoint)
	assert.NotEmpty(t, res.DefaultPrompts)
	require.NotNil(t, res.Params)
	assert.Equal(t, "Riyadh Tower", res.Params.ProjectName)
	assert.Equal(t, []string{"wbs-builder", "schedule-planner", "cost-estimator"}, res.Suggestions)

	conf, ok := res.Metadata["confidence"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, conf, 0.0)
	assert.LessOrEqual(t, conf, 1.0)

	assert.Empty(t, sink.ofType(models.EventPermissionDenied))
}

func TestRouteIntentPermissionDenied(t *testing.T) {
	o, sink := newTestOrchestrator(&fakeInvoker{}, &captureSink{})

	// closeout-reporter needs the enterprise role and the closeout phase.
	res := o.RouteIntent(context.Background(),
		"prepare the closeout report", models.RoleClient, nil, models.PhaseCloseout, nil)

	assert.False(t, res.Success)
	assert.Equal(t, "closeout-reporter", res.ToolID)
	assert.Contains(t, res.Error, "access denied")
	assert.Contains(t, res.Error, "Closeout Reporter")

	denied := sink.ofType(models.EventPermissionDenied)
	require.Len(t, denied, 1)
	assert.Equal(t, "closeout-reporter", denied[0].ToolID)
	assert.Equal(t, "client", denied[0].Metadata["role"])
	assert.NotEmpty(t, denied[0].Metadata["reason"])
}

func TestRouteIntentSurvivesBrokenSink(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeInvoker{}, failingSink{})

	res := o.RouteIntent(context.Background(),
		"prepare the closeout report", models.RoleClient, nil, models.PhaseCloseout, nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "access denied")
}

func TestRecommendedToolsFilterByAccess(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeInvoker{}, &captureSink{})

	client := o.RecommendedTools(models.RoleClient, nil, "")
	for _, tool := range client {
		assert.True(t, tool.MinRole == models.RoleClient,
			"client should only see client-level tools, got %s", tool.ID)
	}

	admin := o.RecommendedTools(models.RoleAdmin,
		[]models.Discipline{models.DisciplineCivil}, models.PhaseCloseout)
	assert.Len(t, admin, len(o.Registry().List()))
}

func TestValidateToolRequirements(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeInvoker{}, &captureSink{})
	tool, _ := o.Registry().Get("boq-generator")

	problems := o.ValidateToolRequirements(tool, nil, nil)
	assert.Len(t, problems, 3) // project context, min inputs, file types

	problems = o.ValidateToolRequirements(tool,
		map[string]interface{}{"project_name": "Riyadh Tower"}, []string{".ifc"})
	assert.Empty(t, problems)
}
