// Package intent matches free-text user messages against the tool catalog
// using per-tool regular-expression pattern sets.
package intent

import (
	"regexp"
	"sort"
	"strings"

	"engmarket/orchestrator/internal/registry"
	"engmarket/orchestrator/pkg/models"
)

// Score boosts applied when the caller supplies session context. These are
// tie-break weights over the additive pattern score, not probabilities.
const (
	phaseBoost    = 0.5
	categoryBoost = 0.3
)

const maxAlternatives = 3

// Context carries optional session hints that bias classification toward
// tools matching the caller's current project phase or workflow category.
type Context struct {
	ProjectPhase models.ProjectPhase
	Category     models.ToolCategory
}

// Parser classifies user messages against a compiled pattern table.
type Parser struct {
	registry *registry.Registry
	patterns map[string][]*regexp.Regexp
}

// NewParser compiles the built-in pattern table for the given registry.
// Patterns for tools absent from the registry are dropped at compile time so
// classification can never produce a dangling tool id.
func NewParser(reg *registry.Registry) *Parser {
	p := &Parser{
		registry: reg,
		patterns: make(map[string][]*regexp.Regexp, len(defaultPatterns)),
	}
	for toolID, exprs := range defaultPatterns {
		if _, ok := reg.Get(toolID); !ok {
			continue
		}
		compiled := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			compiled = append(compiled, regexp.MustCompile(expr))
		}
		p.patterns[toolID] = compiled
	}
	return p
}

// Parse classifies a message. A nil return is the normal negative case: no
// tool pattern matched and the caller should fall back to the generic
// assistant. Parameter extraction is best-effort and independent of scoring.
func (p *Parser) Parse(message string, sctx *Context) *models.IntentClassification {
	lowered := strings.ToLower(message)

	type scored struct {
		toolID string
		score  float64
	}
	var candidates []scored

	for toolID, patterns := range p.patterns {
		score := 0.0
		for _, re := range patterns {
			if re.MatchString(lowered) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		if sctx != nil {
			tool, _ := p.registry.Get(toolID)
			if sctx.ProjectPhase != "" && tool.MinPhase == sctx.ProjectPhase {
				score += phaseBoost
			}
			if sctx.Category != "" && tool.Category == sctx.Category {
				score += categoryBoost
			}
		}
		candidates = append(candidates, scored{toolID: toolID, score: score})
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].toolID < candidates[j].toolID
	})

	confidence := candidates[0].score / 2
	if confidence > 1 {
		confidence = 1
	}

	var alternatives []string
	for _, c := range candidates[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, c.toolID)
	}

	return &models.IntentClassification{
		ToolID:       candidates[0].toolID,
		Confidence:   confidence,
		Params:       ExtractParams(message),
		Alternatives: alternatives,
	}
}
