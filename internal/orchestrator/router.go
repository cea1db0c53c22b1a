package orchestrator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"engmarket/orchestrator/internal/intent"
	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/pkg/models"
)

// RouteIntent combines intent classification with the permission check and
// returns a single recommended tool plus next-step suggestions. It never
// lets an internal error escape: any panic is recovered and converted into a
// failure result pointing at the generic assistant.
func (o *Orchestrator) RouteIntent(ctx context.Context, message string, role models.Role, disciplines []models.Discipline, phase models.ProjectPhase, sctx *intent.Context) (result *models.OrchestrationResult) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.RouteIntent")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("route intent panicked", "panic", r)
			result = failure(registry.FallbackToolID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	classification := o.parser.Parse(message, sctx)
	if classification == nil {
		return failure(registry.FallbackToolID, "could not determine intent from message")
	}

	tool, ok := o.registry.Get(classification.ToolID)
	if !ok {
		return failure(registry.FallbackToolID,
			fmt.Sprintf("tool not found: %s", classification.ToolID))
	}
	span.SetAttributes(attribute.String("tool.id", tool.ID))

	if !o.registry.CanAccess(tool, role, disciplines, phase) {
		reason := accessDenialReason(tool, role, disciplines, phase)
		o.emitter.Emit(ctx, &models.TelemetryEvent{
			Type:    models.EventPermissionDenied,
			ToolID:  tool.ID,
			Success: false,
			Metadata: map[string]interface{}{
				"role":   string(role),
				"reason": reason,
			},
		})
		return failure(tool.ID,
			fmt.Sprintf("access denied to %s: %s", tool.Name, reason))
	}

	suggestions := make([]string, 0)
	for _, next := range o.registry.Chainable(tool.ID) {
		suggestions = append(suggestions, next.ID)
	}

	params := classification.Params
	return &models.OrchestrationResult{
		Success:        true,
		ToolID:         tool.ID,
		ToolName:       tool.Name,
		Description:    tool.Description,
		Endpoint:       tool.Endpoint,
		DefaultPrompts: tool.DefaultPrompts,
		Params:         &params,
		Suggestions:    suggestions,
		Metadata: map[string]interface{}{
			"confidence":   classification.Confidence,
			"alternatives": classification.Alternatives,
		},
	}
}

func accessDenialReason(tool *models.Tool, role models.Role, disciplines []models.Discipline, phase models.ProjectPhase) string {
	if !role.AtLeast(tool.MinRole) {
		return fmt.Sprintf("requires role %s or above", tool.MinRole)
	}
	if len(tool.Disciplines) > 0 {
		held := false
		for _, want := range tool.Disciplines {
			for _, have := range disciplines {
				if have == want {
					held = true
				}
			}
		}
		if !held {
			return fmt.Sprintf("restricted to disciplines %v", tool.Disciplines)
		}
	}
	if !phase.AtOrAfter(tool.MinPhase) {
		return fmt.Sprintf("available from the %s phase onwards", tool.MinPhase)
	}
	return "access denied"
}

// RecommendedTools returns the catalog tools the caller can access, in
// catalog order. It backs tool discovery in the portals.
func (o *Orchestrator) RecommendedTools(role models.Role, disciplines []models.Discipline, phase models.ProjectPhase) []*models.Tool {
	var out []*models.Tool
	for _, tool := range o.registry.List() {
		if o.registry.CanAccess(tool, role, disciplines, phase) {
			out = append(out, tool)
		}
	}
	return out
}

// ValidateToolRequirements checks a prospective invocation against the
// tool's declared requirement flags and returns human-readable problems.
// An empty slice means the invocation looks complete.
func (o *Orchestrator) ValidateToolRequirements(tool *models.Tool, inputs map[string]interface{}, fileTypes []string) []string {
	var problems []string

	if tool.Requirements.ProjectContext {
		if _, ok := inputs["project_name"]; !ok {
			problems = append(problems, "tool requires project context (project_name input)")
		}
	}
	if len(inputs) < tool.Requirements.MinInputFields {
		problems = append(problems, fmt.Sprintf(
			"tool requires at least %d input field(s), got %d",
			tool.Requirements.MinInputFields, len(inputs)))
	}
	if len(tool.Requirements.RequiredFileTypes) > 0 {
		found := false
		for _, required := range tool.Requirements.RequiredFileTypes {
			for _, have := range fileTypes {
				if have == required {
					found = true
				}
			}
		}
		if !found {
			problems = append(problems, fmt.Sprintf(
				"tool requires a file of type %v", tool.Requirements.RequiredFileTypes))
		}
	}
	return problems
}
