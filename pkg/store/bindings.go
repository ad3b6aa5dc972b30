package store

import "errors"

// ErrVaultNotFound is returned when a vault identity is not registered
var ErrVaultNotFound = errors.New("vault not found")

// Binding represents an adapter-to-vault assignment
type Binding struct {
	Adapter string
	Vault   string
}

// VaultHandle is the capability surface the registry uses to notify a
// vault about adapter membership changes.
type VaultHandle interface {
	// AttachAdapter adds the adapter to the vault's active adapter set
	AttachAdapter(adapterID string) error

	// DetachAdapter removes the adapter from the vault's active adapter set
	DetachAdapter(adapterID string) error
}

// VaultDirectory resolves vault identities to handles
type VaultDirectory interface {
	// Vault returns a handle for a registered vault.
	// Returns ErrVaultNotFound for unknown identities.
	Vault(vaultID string) (VaultHandle, error)
}

// BindingsStore abstracts binding storage operations
type BindingsStore interface {
	// VaultFor returns the vault currently bound to an adapter
	VaultFor(adapterID string) (vaultID string, bound bool)

	// ListBindings returns bindings ordered by adapter
	ListBindings(limit, offset int) []Binding

	// CountBindings returns the number of bindings
	CountBindings() int

	// Put writes the binding row for an adapter, replacing any previous row
	Put(adapterID, vaultID string) error

	// Delete removes the binding row for an adapter
	Delete(adapterID string) error

	// InTransaction runs fn atomically. Binding writes and vault
	// notifications made through tx commit together or not at all.
	InTransaction(fn func(tx BindingsStore, vaults VaultDirectory) error) error
}
