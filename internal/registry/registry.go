// Package registry holds the static tool catalog and the access rule that
// gates every tool behind role, discipline and project phase.
package registry

import (
	"engmarket/orchestrator/pkg/models"
)

// Registry is a constructed-once, read-only view over the tool catalog. It
// is safe to share across concurrent callers and is dependency-injected into
// the parser and orchestrator rather than held as a package global.
type Registry struct {
	tools map[string]*models.Tool
	order []string
}

// New builds a registry from the given tools. Later duplicates of an id win,
// matching last-write semantics of catalog definition order.
func New(tools ...*models.Tool) *Registry {
	r := &Registry{tools: make(map[string]*models.Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.ID]; !exists {
			r.order = append(r.order, t.ID)
		}
		r.tools[t.ID] = t
	}
	return r
}

// Get looks up a tool by id.
func (r *Registry) Get(id string) (*models.Tool, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// List returns every tool in catalog definition order.
func (r *Registry) List() []*models.Tool {
	out := make([]*models.Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// Chainable resolves the ChainableWith ids of the given tool, skipping any
// id that no longer exists in the catalog.
func (r *Registry) Chainable(id string) []*models.Tool {
	t, ok := r.tools[id]
	if !ok {
		return nil
	}
	out := make([]*models.Tool, 0, len(t.ChainableWith))
	for _, next := range t.ChainableWith {
		if nt, ok := r.tools[next]; ok {
			out = append(out, nt)
		}
	}
	return out
}

// CanAccess decides tool access for a caller. Access is granted iff the role
// satisfies the tool's minimum role, the caller holds at least one declared
// discipline (or the tool declares none), and the caller's project phase is
// at or after the tool's minimum phase (or the tool declares none). The
// result is a strict boolean with no side effects.
func (r *Registry) CanAccess(tool *models.Tool, role models.Role, disciplines []models.Discipline, phase models.ProjectPhase) bool {
	if !role.AtLeast(tool.MinRole) {
		return false
	}
	if len(tool.Disciplines) > 0 && !holdsAny(disciplines, tool.Disciplines) {
		return false
	}
	return phase.AtOrAfter(tool.MinPhase)
}

func holdsAny(held, wanted []models.Discipline) bool {
	for _, w := range wanted {
		for _, h := range held {
			if h == w {
				return true
			}
		}
	}
	return false
}
