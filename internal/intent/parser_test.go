package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/pkg/models"
)

func newTestParser() *Parser {
	return NewParser(registry.DefaultCatalog())
}

func TestParseCharterMessage(t *testing.T) {
	p := newTestParser()

	c := p.Parse("Create a project charter for Riyadh Tower", nil)
	require.NotNil(t, c)
	assert.Equal(t, "project-charter", c.ToolID)
	assert.Equal(t, "Riyadh Tower", c.Params.ProjectName)
	assert.GreaterOrEqual(t, c.Confidence, 0.0)
	assert.LessOrEqual(t, c.Confidence, 1.0)
}

func TestParseNoMatchReturnsNil(t *testing.T) {
	p := newTestParser()

	assert.Nil(t, p.Parse("hello there", nil))
	assert.Nil(t, p.Parse("", nil))
	assert.Nil(t, p.Parse("completely unrelated text about cooking pasta", nil))
}

func TestParseConfidenceBounds(t *testing.T) {
	p := newTestParser()

	// Hits several schedule patterns at once; confidence must clamp at 1.
	c := p.Parse("plan a schedule with a timeline, milestones and activity durations", nil)
	require.NotNil(t, c)
	assert.Equal(t, "schedule-planner", c.ToolID)
	assert.LessOrEqual(t, c.Confidence, 1.0)
	assert.Greater(t, c.Confidence, 0.0)
}

func TestParseContextBoostBreaksTie(t *testing.T) {
	p := newTestParser()

	// "risks" and "budget" each score one pattern point. The category hint
	// pushes the cost tool ahead.
	msg := "what budget covers these risks"
	noCtx := p.Parse(msg, nil)
	require.NotNil(t, noCtx)

	withCtx := p.Parse(msg, &Context{Category: models.CategoryCost})
	require.NotNil(t, withCtx)
	assert.Equal(t, "cost-estimator", withCtx.ToolID)
}

func TestParsePhaseBoost(t *testing.T) {
	p := newTestParser()

	// Both tools match one pattern; the phase hint favors the tool whose
	// own minimum phase equals the session phase.
	msg := "progress report with risks"
	c := p.Parse(msg, nil)
	require.NotNil(t, c)
	assert.Equal(t, "progress-reporter", c.ToolID)

	c = p.Parse(msg, &Context{ProjectPhase: models.PhasePlanning})
	require.NotNil(t, c)
	assert.Equal(t, "risk-register", c.ToolID)
}

func TestParseAlternativesCapped(t *testing.T) {
	p := newTestParser()

	c := p.Parse("charter wbs schedule budget risks boq design review progress report", nil)
	require.NotNil(t, c)
	assert.LessOrEqual(t, len(c.Alternatives), 3)
	assert.NotContains(t, c.Alternatives, c.ToolID)
}

func TestExtractParamsNumbers(t *testing.T) {
	params := ExtractParams("estimate 1,200,000.50 plus 300 units")
	assert.Equal(t, []float64{1200000.50, 300}, params.Numbers)
}

func TestExtractParamsDate(t *testing.T) {
	params := ExtractParams("deadline 15/3/2026 then 1-4-27")
	assert.Equal(t, "15/3/2026", params.Date)
}

func TestExtractParamsAbsentFields(t *testing.T) {
	params := ExtractParams("no parameters here")
	assert.True(t, params.IsZero())
}
