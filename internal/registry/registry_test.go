package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"engmarket/orchestrator/pkg/models"
)

func TestGetRoundTrip(t *testing.T) {
	reg := DefaultCatalog()

	for _, tool := range reg.List() {
		got, ok := reg.Get(tool.ID)
		assert.True(t, ok, "tool %s should resolve", tool.ID)
		assert.Same(t, tool, got)
	}

	_, ok := reg.Get("no-such-tool")
	assert.False(t, ok)
}

func TestChainableSkipsDanglingIDs(t *testing.T) {
	reg := New(
		&models.Tool{ID: "a", ChainableWith: []string{"b", "gone", "c"}},
		&models.Tool{ID: "b"},
		&models.Tool{ID: "c"},
	)

	chain := reg.Chainable("a")
	ids := make([]string, 0, len(chain))
	for _, t := range chain {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []string{"b", "c"}, ids)

	assert.Nil(t, reg.Chainable("missing"))
}

func TestCanAccessRoleGate(t *testing.T) {
	reg := New()
	tool := &models.Tool{ID: "t", MinRole: models.RoleEngineer}

	// A client never satisfies an engineer-only tool, whatever else it holds.
	assert.False(t, reg.CanAccess(tool, models.RoleClient,
		[]models.Discipline{models.DisciplineCivil}, models.PhaseCloseout))
	assert.True(t, reg.CanAccess(tool, models.RoleEngineer, nil, ""))
	assert.True(t, reg.CanAccess(tool, models.RoleAdmin, nil, ""))
}

func TestCanAccessDisciplineGate(t *testing.T) {
	reg := New()
	tool := &models.Tool{
		ID:          "t",
		MinRole:     models.RoleEngineer,
		Disciplines: []models.Discipline{models.DisciplineStructural, models.DisciplineCivil},
	}

	assert.False(t, reg.CanAccess(tool, models.RoleEngineer, nil, ""))
	assert.False(t, reg.CanAccess(tool, models.RoleEngineer,
		[]models.Discipline{models.DisciplineElectrical}, ""))
	assert.True(t, reg.CanAccess(tool, models.RoleEngineer,
		[]models.Discipline{models.DisciplineElectrical, models.DisciplineCivil}, ""))
}

func TestCanAccessPhaseGate(t *testing.T) {
	reg := New()
	tool := &models.Tool{ID: "t", MinRole: models.RoleClient, MinPhase: models.PhaseDesign}

	assert.False(t, reg.CanAccess(tool, models.RoleClient, nil, models.PhasePlanning))
	assert.True(t, reg.CanAccess(tool, models.RoleClient, nil, models.PhaseDesign))
	assert.True(t, reg.CanAccess(tool, models.RoleClient, nil, models.PhaseExecution))
	// Unknown caller phase never satisfies a declared minimum.
	assert.False(t, reg.CanAccess(tool, models.RoleClient, nil, ""))
}

func TestCanAccessIsDeterministic(t *testing.T) {
	reg := DefaultCatalog()
	tool, _ := reg.Get("boq-generator")

	first := reg.CanAccess(tool, models.RoleEngineer,
		[]models.Discipline{models.DisciplineCivil}, models.PhaseDesign)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reg.CanAccess(tool, models.RoleEngineer,
			[]models.Discipline{models.DisciplineCivil}, models.PhaseDesign))
	}
	assert.True(t, first)
}
