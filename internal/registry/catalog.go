package registry

import (
	"engmarket/orchestrator/pkg/models"
)

// FallbackToolID is the generic assistant every failed routing points at.
const FallbackToolID = "ai-assistant"

// DefaultCatalog returns the built-in marketplace tool catalog. The catalog
// is defined at process start and never mutated afterwards.
func DefaultCatalog() *Registry {
	return New(
		&models.Tool{
			ID:          FallbackToolID,
			Name:        "AI Assistant",
			Description: "General-purpose assistant for questions that don't map to a specific tool.",
			Category:    models.CategoryGeneral,
			MinRole:     models.RoleClient,
			Endpoint:    "/api/tools/assistant",
			DefaultPrompts: []string{
				"What can the AI tools do for my project?",
				"Summarize the status of my open jobs.",
			},
		},
		&models.Tool{
			ID:          "project-charter",
			Name:        "Project Charter Generator",
			Description: "Drafts a project charter with objectives, scope and stakeholders.",
			Category:    models.CategoryPlanning,
			MinRole:     models.RoleClient,
			Endpoint:    "/api/tools/project-charter",
			Requirements: models.ToolRequirements{
				MinInputFields: 1,
			},
			DefaultPrompts: []string{
				"Create a project charter for my new build.",
				"Draft charter objectives for a renovation project.",
			},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "charter", "objectives"},
			},
			ChainableWith: []string{"wbs-builder", "schedule-planner", "cost-estimator"},
		},
		&models.Tool{
			ID:          "wbs-builder",
			Name:        "WBS Builder",
			Description: "Builds a work breakdown structure from scope or charter input.",
			Category:    models.CategoryPlanning,
			MinRole:     models.RoleClient,
			Endpoint:    "/api/tools/wbs-builder",
			Requirements: models.ToolRequirements{
				ProjectContext: true,
				MinInputFields: 1,
			},
			DefaultPrompts: []string{"Break my project scope into work packages."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "wbs", "work_packages"},
			},
			ChainableWith: []string{"schedule-planner", "cost-estimator"},
		},
		&models.Tool{
			ID:          "schedule-planner",
			Name:        "Schedule Planner",
			Description: "Plans activity durations and milestones from a WBS.",
			Category:    models.CategoryPlanning,
			MinRole:     models.RoleEngineer,
			MinPhase:    models.PhasePlanning,
			Endpoint:    "/api/tools/schedule-planner",
			Requirements: models.ToolRequirements{
				ProjectContext: true,
				MinInputFields: 1,
			},
			DefaultPrompts: []string{"Plan a schedule for the approved work packages."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "schedule", "milestones"},
			},
			ChainableWith: []string{"cost-estimator", "risk-register"},
		},
		&models.Tool{
			ID:          "cost-estimator",
			Name:        "Cost Estimator",
			Description: "Estimates project cost from scope, WBS or schedule input.",
			Category:    models.CategoryCost,
			MinRole:     models.RoleClient,
			Endpoint:    "/api/tools/cost-estimator",
			Requirements: models.ToolRequirements{
				MinInputFields: 1,
			},
			DefaultPrompts: []string{
				"Estimate the cost of my project.",
				"What budget should I plan for this scope?",
			},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "estimate", "currency"},
			},
			ChainableWith: []string{"boq-generator", "risk-register"},
		},
		&models.Tool{
			ID:          "boq-generator",
			Name:        "BOQ Generator",
			Description: "Generates a bill of quantities from design documents.",
			Category:    models.CategoryCost,
			MinRole:     models.RoleEngineer,
			Disciplines: []models.Discipline{models.DisciplineCivil, models.DisciplineStructural},
			MinPhase:    models.PhaseDesign,
			Endpoint:    "/api/tools/boq-generator",
			Requirements: models.ToolRequirements{
				ProjectContext:    true,
				MinInputFields:    1,
				RequiredFileTypes: []string{".dwg", ".ifc", ".pdf"},
			},
			DefaultPrompts: []string{"Generate a BOQ from the issued-for-construction drawings."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "boq", "quantities"},
			},
			ChainableWith: []string{"cost-estimator", "progress-reporter"},
		},
		&models.Tool{
			ID:          "design-reviewer",
			Name:        "Design Reviewer",
			Description: "Reviews design packages against codes and discipline checklists.",
			Category:    models.CategoryDesign,
			MinRole:     models.RoleEngineer,
			Disciplines: []models.Discipline{
				models.DisciplineCivil, models.DisciplineStructural,
				models.DisciplineMechanical, models.DisciplineElectrical,
			},
			MinPhase: models.PhaseDesign,
			Endpoint: "/api/tools/design-reviewer",
			Requirements: models.ToolRequirements{
				ProjectContext:    true,
				MinInputFields:    1,
				RequiredFileTypes: []string{".pdf", ".dwg", ".ifc"},
			},
			DefaultPrompts: []string{"Review this design package for code compliance."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "findings"},
			},
			ChainableWith: []string{"risk-register", "boq-generator"},
		},
		&models.Tool{
			ID:          "risk-register",
			Name:        "Risk Register",
			Description: "Identifies and ranks project risks with mitigation actions.",
			Category:    models.CategoryPlanning,
			MinRole:     models.RoleEngineer,
			MinPhase:    models.PhasePlanning,
			Endpoint:    "/api/tools/risk-register",
			Requirements: models.ToolRequirements{
				ProjectContext: true,
			},
			DefaultPrompts: []string{"Build a risk register for the execution phase."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "risks"},
			},
			ChainableWith: []string{"progress-reporter"},
		},
		&models.Tool{
			ID:          "progress-reporter",
			Name:        "Progress Reporter",
			Description: "Compiles site progress into a periodic status report.",
			Category:    models.CategoryExecution,
			MinRole:     models.RoleEngineer,
			MinPhase:    models.PhaseExecution,
			Endpoint:    "/api/tools/progress-reporter",
			Requirements: models.ToolRequirements{
				ProjectContext: true,
				MinInputFields: 1,
			},
			DefaultPrompts: []string{"Compile this week's progress report."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "progress", "period"},
			},
			ChainableWith: []string{"closeout-reporter"},
		},
		&models.Tool{
			ID:          "closeout-reporter",
			Name:        "Closeout Reporter",
			Description: "Prepares the project closeout report and lessons learned.",
			Category:    models.CategoryCloseout,
			MinRole:     models.RoleEnterprise,
			MinPhase:    models.PhaseCloseout,
			Endpoint:    "/api/tools/closeout-reporter",
			Requirements: models.ToolRequirements{
				ProjectContext: true,
			},
			DefaultPrompts: []string{"Prepare the closeout report for the finished project."},
			ContextSwitch: models.ContextSwitchPolicy{
				PreserveState: true,
				CarryInputs:   []string{"project_name", "closeout_summary"},
			},
		},
	)
}
