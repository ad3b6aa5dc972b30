package store

// AuthzStore abstracts role grant checks and mutations
type AuthzStore interface {
	// HasRole checks if a principal holds a role
	HasRole(principalID, roleID string) bool

	// RoleExists checks if a role label is known
	RoleExists(roleID string) bool

	// GrantRole grants a role to a principal
	GrantRole(roleID, principalID string) error

	// RevokeRole removes a role grant from a principal
	RevokeRole(roleID, principalID string) error
}
