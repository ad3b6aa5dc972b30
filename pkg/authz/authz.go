// Package authz provides the role-based authorization policy for the
// curator. The policy is a thin object over an AuthzStore so the access
// rule can be unit-tested independently of registry storage.
package authz

const (
	// RoleAdmin is fixed at bootstrap and holds no mutating capability
	RoleAdmin = "admin"

	// RoleOperator is the only role permitted to mutate bindings
	RoleOperator = "operator"
)

// Store is the subset of role state the policy needs
type Store interface {
	HasRole(principalID, roleID string) bool
}

// Policy answers whether a principal may act in a given role
type Policy struct {
	store Store
}

// NewPolicy creates a Policy backed by a role store
func NewPolicy(store Store) *Policy {
	return &Policy{store: store}
}

// Allowed checks if a principal holds the given role
func (p *Policy) Allowed(principalID, roleID string) bool {
	if principalID == "" {
		return false
	}
	return p.store.HasRole(principalID, roleID)
}
