// Package models defines the domain models for the AI tools orchestration service
package models

// Role represents a platform role on the marketplace
type Role string

const (
	RoleClient     Role = "client"
	RoleEngineer   Role = "engineer"
	RoleEnterprise Role = "enterprise"
	RoleAdmin      Role = "admin"
)

// roleRank orders roles from least to most privileged. Unknown roles rank
// below every known role.
var roleRank = map[Role]int{
	RoleClient:     1,
	RoleEngineer:   2,
	RoleEnterprise: 3,
	RoleAdmin:      4,
}

// AtLeast reports whether r satisfies the minimum role min.
// An empty minimum means any role is acceptable.
func (r Role) AtLeast(min Role) bool {
	if min == "" {
		return true
	}
	return roleRank[r] >= roleRank[min]
}

// Valid reports whether r is one of the known platform roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Discipline is an engineering specialty tag used to gate access to
// specialized tools
type Discipline string

const (
	DisciplineCivil         Discipline = "civil"
	DisciplineStructural    Discipline = "structural"
	DisciplineMechanical    Discipline = "mechanical"
	DisciplineElectrical    Discipline = "electrical"
	DisciplineArchitectural Discipline = "architectural"
	DisciplineGeotechnical  Discipline = "geotechnical"
	DisciplineSurveying     Discipline = "surveying"
)

// ProjectPhase is a coarse project lifecycle stage
type ProjectPhase string

const (
	PhaseConcept   ProjectPhase = "concept"
	PhasePlanning  ProjectPhase = "planning"
	PhaseDesign    ProjectPhase = "design"
	PhaseExecution ProjectPhase = "execution"
	PhaseCloseout  ProjectPhase = "closeout"
)

var phaseOrder = map[ProjectPhase]int{
	PhaseConcept:   1,
	PhasePlanning:  2,
	PhaseDesign:    3,
	PhaseExecution: 4,
	PhaseCloseout:  5,
}

// AtOrAfter reports whether p is at or after min in the lifecycle ordering.
// An empty minimum means the tool is available in every phase. An unknown
// caller phase never satisfies a declared minimum.
func (p ProjectPhase) AtOrAfter(min ProjectPhase) bool {
	if min == "" {
		return true
	}
	return phaseOrder[p] >= phaseOrder[min]
}

// ToolCategory groups tools by workflow phase
type ToolCategory string

const (
	CategoryPlanning  ToolCategory = "planning"
	CategoryDesign    ToolCategory = "design"
	CategoryCost      ToolCategory = "cost"
	CategoryExecution ToolCategory = "execution"
	CategoryCloseout  ToolCategory = "closeout"
	CategoryGeneral   ToolCategory = "general"
)

// ContextSwitchPolicy declares whether a tool's state survives a handoff and
// which named fields are carried to the next tool.
type ContextSwitchPolicy struct {
	PreserveState bool     `json:"preserve_state"`
	CarryInputs   []string `json:"carry_inputs,omitempty"`
}

// ToolRequirements captures what a tool needs before it can be invoked.
type ToolRequirements struct {
	ProjectContext    bool     `json:"project_context"`
	MinInputFields    int      `json:"min_input_fields"`
	RequiredFileTypes []string `json:"required_file_types,omitempty"`
}

// Tool is a catalog-registered operation with declared permissions, inputs
// and chaining relationships. Tools are immutable once the registry is built.
type Tool struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    ToolCategory `json:"category"`

	// Permission requirements. An empty Disciplines list means the tool is
	// not discipline-restricted; an empty MinPhase means no phase gate.
	MinRole     Role         `json:"min_role"`
	Disciplines []Discipline `json:"disciplines,omitempty"`
	MinPhase    ProjectPhase `json:"min_phase,omitempty"`

	Requirements   ToolRequirements    `json:"requirements"`
	DefaultPrompts []string            `json:"default_prompts,omitempty"`
	Endpoint       string              `json:"endpoint"`
	ContextSwitch  ContextSwitchPolicy `json:"context_switch"`

	// ChainableWith lists tool ids this tool commonly hands off to. The
	// list is advisory only: handoffs outside it are warned on, not blocked.
	ChainableWith []string `json:"chainable_with,omitempty"`
}
