package orchestrator

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"engmarket/orchestrator/pkg/models"
)

// workflowTemplates predefines canonical tool sequences for common
// marketplace use cases.
var workflowTemplates = map[string]*models.WorkflowTemplate{
	"full-project-planning": {
		ID:          "full-project-planning",
		Name:        "Full Project Planning",
		Description: "Charter, WBS, schedule and budget in one pass.",
		ToolIDs:     []string{"project-charter", "wbs-builder", "schedule-planner", "cost-estimator"},
	},
	"technical-design": {
		ID:          "technical-design",
		Name:        "Technical Design",
		Description: "Design review followed by quantities and risk updates.",
		ToolIDs:     []string{"design-reviewer", "boq-generator", "risk-register"},
	},
	"cost-control": {
		ID:          "cost-control",
		Name:        "Cost Control",
		Description: "Quantities, estimate refresh and progress reporting.",
		ToolIDs:     []string{"boq-generator", "cost-estimator", "progress-reporter"},
	},
	"project-closeout": {
		ID:          "project-closeout",
		Name:        "Project Closeout",
		Description: "Final progress report and closeout documentation.",
		ToolIDs:     []string{"progress-reporter", "closeout-reporter"},
	},
}

// Template looks up a workflow template by id.
func Template(id string) (*models.WorkflowTemplate, bool) {
	t, ok := workflowTemplates[id]
	return t, ok
}

// Templates lists every built-in workflow template, ordered by id.
func Templates() []*models.WorkflowTemplate {
	out := make([]*models.WorkflowTemplate, 0, len(workflowTemplates))
	for _, t := range workflowTemplates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuildPipeline constructs a pending pipeline from an ordered tool sequence.
// The first step is seeded with the caller-supplied initial inputs; every
// later step starts empty and is filled by context transfer during execution
// or by the caller before resuming.
func BuildPipeline(toolSequence []string, initialInputs map[string]interface{}, name, description string) *models.WorkflowPipeline {
	steps := make([]*models.WorkflowStep, 0, len(toolSequence))
	for i, toolID := range toolSequence {
		inputs := map[string]interface{}{}
		if i == 0 {
			for k, v := range initialInputs {
				inputs[k] = v
			}
		}
		steps = append(steps, &models.WorkflowStep{
			ID:     uuid.New().String(),
			ToolID: toolID,
			Action: "execute",
			Inputs: inputs,
			Status: models.StepPending,
		})
	}
	return &models.WorkflowPipeline{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Steps:       steps,
		Status:      models.PipelineRunning,
		CreatedAt:   time.Now().UTC(),
		Metadata:    map[string]interface{}{},
	}
}

// BuildFromTemplate builds a pipeline from a named template.
func BuildFromTemplate(templateID string, initialInputs map[string]interface{}) (*models.WorkflowPipeline, bool) {
	tpl, ok := Template(templateID)
	if !ok {
		return nil, false
	}
	return BuildPipeline(tpl.ToolIDs, initialInputs, tpl.Name, tpl.Description), true
}
