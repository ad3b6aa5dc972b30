// Package memory provides an in-memory implementation of the store
// interfaces. It backs unit tests and benchmarks; production deployments
// use the GORM implementations.
package memory

import (
	"sort"
	"sync"

	"github.com/finbound/curator/pkg/store"
)

// Ensure Backend implements the store interfaces it claims
var (
	_ store.BindingsStore  = (*Backend)(nil)
	_ store.VaultDirectory = (*Backend)(nil)
	_ store.VaultsStore    = (*Backend)(nil)
	_ store.AuthzStore     = (*Backend)(nil)
)

// Backend holds all curator state in maps
type Backend struct {
	mu          sync.Mutex
	bindings    map[string]string          // adapter -> vault
	attachments map[string]map[string]bool // vault -> attached adapters
	vaults      map[string]string          // vault -> owner
	grants      map[string]map[string]bool // role -> principals
	roles       map[string]bool
}

// NewBackend creates an empty in-memory backend
func NewBackend() *Backend {
	return &Backend{
		bindings:    map[string]string{},
		attachments: map[string]map[string]bool{},
		vaults:      map[string]string{},
		grants:      map[string]map[string]bool{},
		roles:       map[string]bool{},
	}
}

// VaultFor returns the vault currently bound to an adapter
func (b *Backend) VaultFor(adapterID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	vault, bound := b.bindings[adapterID]
	return vault, bound
}

// ListBindings returns bindings ordered by adapter
func (b *Backend) ListBindings(limit, offset int) []store.Binding {
	b.mu.Lock()
	defer b.mu.Unlock()

	adapters := make([]string, 0, len(b.bindings))
	for adapter := range b.bindings {
		adapters = append(adapters, adapter)
	}
	sort.Strings(adapters)

	if offset > 0 {
		if offset >= len(adapters) {
			return nil
		}
		adapters = adapters[offset:]
	}
	if limit > 0 && limit < len(adapters) {
		adapters = adapters[:limit]
	}

	bindings := make([]store.Binding, 0, len(adapters))
	for _, adapter := range adapters {
		bindings = append(bindings, store.Binding{Adapter: adapter, Vault: b.bindings[adapter]})
	}
	return bindings
}

// CountBindings returns the number of bindings
func (b *Backend) CountBindings() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bindings)
}

// Put writes the binding for an adapter, replacing any previous value
func (b *Backend) Put(adapterID, vaultID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings[adapterID] = vaultID
	return nil
}

// Delete removes the binding for an adapter
func (b *Backend) Delete(adapterID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.bindings, adapterID)
	return nil
}

// InTransaction runs fn against a copy of the mutable state and swaps the
// copy in only when fn succeeds, so partial writes never become visible.
func (b *Backend) InTransaction(fn func(tx store.BindingsStore, vaults store.VaultDirectory) error) error {
	b.mu.Lock()
	scratch := &Backend{
		bindings:    cloneStringMap(b.bindings),
		attachments: cloneSetMap(b.attachments),
		vaults:      b.vaults,
		grants:      b.grants,
		roles:       b.roles,
	}
	b.mu.Unlock()

	if err := fn(scratch, scratch); err != nil {
		return err
	}

	b.mu.Lock()
	b.bindings = scratch.bindings
	b.attachments = scratch.attachments
	b.mu.Unlock()
	return nil
}

// Vault returns a handle for a registered vault
func (b *Backend) Vault(vaultID string) (store.VaultHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.vaults[vaultID]; !ok {
		return nil, store.ErrVaultNotFound
	}
	return &vaultHandle{backend: b, vaultID: vaultID}, nil
}

// VaultExists checks if a vault is registered
func (b *Backend) VaultExists(vaultID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.vaults[vaultID]
	return ok
}

// FetchVault retrieves a vault and its attached adapter set
func (b *Backend) FetchVault(vaultID string) *store.Vault {
	b.mu.Lock()
	defer b.mu.Unlock()

	owner, ok := b.vaults[vaultID]
	if !ok {
		return nil
	}
	return &store.Vault{ID: vaultID, Owner: owner, Adapters: b.attachedLocked(vaultID)}
}

// ListVaults returns registered vaults ordered by ID
func (b *Backend) ListVaults(limit, offset int) []store.Vault {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]string, 0, len(b.vaults))
	for id := range b.vaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset > 0 {
		if offset >= len(ids) {
			return nil
		}
		ids = ids[offset:]
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	vaults := make([]store.Vault, 0, len(ids))
	for _, id := range ids {
		vaults = append(vaults, store.Vault{ID: id, Owner: b.vaults[id], Adapters: b.attachedLocked(id)})
	}
	return vaults
}

// CreateVault registers a vault identity
func (b *Backend) CreateVault(vaultID, ownerID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.vaults[vaultID]; !ok {
		b.vaults[vaultID] = ownerID
	}
	return nil
}

// IsAdapterAttached checks if a vault considers an adapter attached
func (b *Backend) IsAdapterAttached(vaultID, adapterID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attachments[vaultID][adapterID]
}

// HasRole checks if a principal holds a role
func (b *Backend) HasRole(principalID, roleID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grants[roleID][principalID]
}

// RoleExists checks if a role label is known
func (b *Backend) RoleExists(roleID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.roles[roleID]
}

// GrantRole grants a role to a principal
func (b *Backend) GrantRole(roleID, principalID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roles[roleID] = true
	if b.grants[roleID] == nil {
		b.grants[roleID] = map[string]bool{}
	}
	b.grants[roleID][principalID] = true
	return nil
}

// RevokeRole removes a role grant from a principal
func (b *Backend) RevokeRole(roleID, principalID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.grants[roleID], principalID)
	return nil
}

func (b *Backend) attachedLocked(vaultID string) []string {
	adapters := make([]string, 0, len(b.attachments[vaultID]))
	for adapter := range b.attachments[vaultID] {
		adapters = append(adapters, adapter)
	}
	sort.Strings(adapters)
	return adapters
}

type vaultHandle struct {
	backend *Backend
	vaultID string
}

func (h *vaultHandle) AttachAdapter(adapterID string) error {
	b := h.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attachments[h.vaultID] == nil {
		b.attachments[h.vaultID] = map[string]bool{}
	}
	b.attachments[h.vaultID][adapterID] = true
	return nil
}

func (h *vaultHandle) DetachAdapter(adapterID string) error {
	b := h.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.attachments[h.vaultID], adapterID)
	return nil
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSetMap(m map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(m))
	for k, set := range m {
		inner := make(map[string]bool, len(set))
		for e := range set {
			inner[e] = true
		}
		out[k] = inner
	}
	return out
}
