package graph

import (
	"slices"

	"github.com/AnotherFullstackDev/promotectl/internal/promotion"
)

// Role is the deploying principal. It accumulates the repository grants
// issued while sources and destinations bind, so the orchestrator can render
// them into the identity system's policy.
type Role struct {
	name   string
	grants []promotion.Grant
}

func NewRole(name string) *Role {
	return &Role{name: name}
}

func (r *Role) Name() string {
	return r.name
}

// AddGrant records a grant. Repeated identical grants collapse into one,
// which keeps binds against the same identity/repository pair idempotent.
func (r *Role) AddGrant(grant promotion.Grant) {
	if slices.Contains(r.grants, grant) {
		return
	}
	r.grants = append(r.grants, grant)
}

func (r *Role) Grants() []promotion.Grant {
	return slices.Clone(r.grants)
}
