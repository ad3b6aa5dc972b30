package registry

import "fmt"

// UnauthorizedError indicates the caller lacks the role required for a
// mutating operation.
type UnauthorizedError struct {
	Principal string
	Role      string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("principal %q does not hold role %q", e.Principal, e.Role)
}

// AlreadyBoundError indicates an attempt to bind an adapter that is
// already bound to a different vault without the force flag.
type AlreadyBoundError struct {
	Adapter string
	Vault   string
}

func (e *AlreadyBoundError) Error() string {
	return fmt.Sprintf("adapter %q is already bound to vault %q", e.Adapter, e.Vault)
}

// NotBoundError indicates an attempt to remove a binding that does not exist.
type NotBoundError struct {
	Adapter string
}

func (e *NotBoundError) Error() string {
	return fmt.Sprintf("adapter %q has no binding", e.Adapter)
}

// InvalidIdentityError indicates an empty adapter or vault identity.
type InvalidIdentityError struct {
	Field string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("%s identity must not be empty", e.Field)
}
