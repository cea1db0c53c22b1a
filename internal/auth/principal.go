package auth

import (
	"context"

	"engmarket/orchestrator/pkg/models"
)

// Principal is the authenticated caller as seen by the orchestration layer:
// an identity plus the permission context used by the tool access rule.
type Principal struct {
	Email       string
	Role        models.Role
	Disciplines []models.Discipline
	Phase       models.ProjectPhase
}

type principalKey struct{}

// WithPrincipal stores the principal on the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom retrieves the principal set by RequireAuth.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// principalFromClaims builds a Principal out of ID-token claims. Unknown
// role claims fall back to client, the least privileged role; unknown
// disciplines are dropped rather than granted.
func principalFromClaims(email, role string, disciplines []string, phase string) *Principal {
	p := &Principal{
		Email: email,
		Role:  models.Role(role),
		Phase: models.ProjectPhase(phase),
	}
	if !p.Role.Valid() {
		p.Role = models.RoleClient
	}
	known := map[models.Discipline]bool{
		models.DisciplineCivil:         true,
		models.DisciplineStructural:    true,
		models.DisciplineMechanical:    true,
		models.DisciplineElectrical:    true,
		models.DisciplineArchitectural: true,
		models.DisciplineGeotechnical:  true,
		models.DisciplineSurveying:     true,
	}
	for _, d := range disciplines {
		if disc := models.Discipline(d); known[disc] {
			p.Disciplines = append(p.Disciplines, disc)
		}
	}
	return p
}
