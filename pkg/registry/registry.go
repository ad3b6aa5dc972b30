package registry

import (
	"fmt"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/store"
)

// Registry mediates all mutations of the adapter-to-vault map
type Registry struct {
	admin        string
	bindings     store.BindingsStore
	policy       *authz.Policy
	silentRebind bool
}

// Option configures a Registry
type Option func(*Registry)

// WithSilentRebind restores the historical contract: SetStrategy
// overwrites an existing binding unconditionally and never detaches the
// adapter from its previous vault. Only compatibility tests should use it.
func WithSilentRebind() Option {
	return func(r *Registry) {
		r.silentRebind = true
	}
}

// New creates a Registry. The admin principal is fixed for the lifetime
// of the instance.
func New(admin string, bindings store.BindingsStore, policy *authz.Policy, opts ...Option) *Registry {
	r := &Registry{
		admin:    admin,
		bindings: bindings,
		policy:   policy,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Admin returns the principal the registry was constructed with
func (r *Registry) Admin() string {
	return r.admin
}

// SetStrategy binds an adapter to a vault on behalf of principal.
//
// A bound adapter is not rebound unless force is set; the call fails with
// AlreadyBoundError and the map stays untouched. On success the previous
// vault (if any) is told to detach the adapter and the new vault to attach
// it, in the same transaction as the map write.
func (r *Registry) SetStrategy(principal, adapter, vault string, force bool) error {
	if !r.policy.Allowed(principal, authz.RoleOperator) {
		return &UnauthorizedError{Principal: principal, Role: authz.RoleOperator}
	}
	if adapter == "" {
		return &InvalidIdentityError{Field: "adapter"}
	}
	if vault == "" {
		return &InvalidIdentityError{Field: "vault"}
	}

	current, bound := r.bindings.VaultFor(adapter)
	if bound && current == vault {
		return nil
	}

	if r.silentRebind {
		return r.setUnguarded(adapter, vault)
	}

	if bound && !force {
		return &AlreadyBoundError{Adapter: adapter, Vault: current}
	}

	err := r.bindings.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
		next, err := vaults.Vault(vault)
		if err != nil {
			return err
		}
		if bound {
			previous, err := vaults.Vault(current)
			if err != nil {
				return err
			}
			if err := previous.DetachAdapter(adapter); err != nil {
				return err
			}
		}
		if err := next.AttachAdapter(adapter); err != nil {
			return err
		}
		return tx.Put(adapter, vault)
	})
	if err != nil {
		return fmt.Errorf("set strategy for %s: %w", adapter, err)
	}
	return nil
}

// setUnguarded reproduces the historical overwrite: the map is written and
// the new vault attached, but the previous vault keeps the adapter in its
// set with no detach notification.
func (r *Registry) setUnguarded(adapter, vault string) error {
	err := r.bindings.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
		next, err := vaults.Vault(vault)
		if err != nil {
			return err
		}
		if err := next.AttachAdapter(adapter); err != nil {
			return err
		}
		return tx.Put(adapter, vault)
	})
	if err != nil {
		return fmt.Errorf("set strategy for %s: %w", adapter, err)
	}
	return nil
}

// RemoveStrategy detaches an adapter from its vault and deletes the binding
func (r *Registry) RemoveStrategy(principal, adapter string) error {
	if !r.policy.Allowed(principal, authz.RoleOperator) {
		return &UnauthorizedError{Principal: principal, Role: authz.RoleOperator}
	}
	if adapter == "" {
		return &InvalidIdentityError{Field: "adapter"}
	}

	current, bound := r.bindings.VaultFor(adapter)
	if !bound {
		return &NotBoundError{Adapter: adapter}
	}

	err := r.bindings.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
		previous, err := vaults.Vault(current)
		if err != nil {
			return err
		}
		if err := previous.DetachAdapter(adapter); err != nil {
			return err
		}
		return tx.Delete(adapter)
	})
	if err != nil {
		return fmt.Errorf("remove strategy for %s: %w", adapter, err)
	}
	return nil
}

// VaultFor returns the vault an adapter is currently bound to.
// Read-only; no role is required.
func (r *Registry) VaultFor(adapter string) (string, bool) {
	return r.bindings.VaultFor(adapter)
}
