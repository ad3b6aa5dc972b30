package policy

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/store"
)

// LoadResult contains the results of loading a policy
type LoadResult struct {
	CreatedVaults []string
	Grants        int
	Bindings      int
	Removals      int
}

// Loader applies policy statements against the registry and its stores.
// Vaults and grants are written directly; bindings go through the
// registry so they are subject to the same guard as API calls.
type Loader struct {
	registry   *registry.Registry
	vaults     store.VaultsStore
	authzStore store.AuthzStore
	principal  string
}

// NewLoader creates a policy loader. Bindings are applied on behalf of
// the given principal, which must hold the operator role for any !bind
// or !unbind statement to succeed.
func NewLoader(reg *registry.Registry, vaults store.VaultsStore, authzStore store.AuthzStore, principal string) *Loader {
	return &Loader{
		registry:   reg,
		vaults:     vaults,
		authzStore: authzStore,
		principal:  principal,
	}
}

// LoadFromFile parses and loads policy from a file on disk
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return l.LoadFromReader(file)
}

// LoadFromReader parses and loads policy from an io.Reader
func (l *Loader) LoadFromReader(r io.Reader) (*LoadResult, error) {
	statements, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	return l.Load(statements)
}

// LoadFromString parses and loads policy from a string
func (l *Loader) LoadFromString(policyText string) (*LoadResult, error) {
	return l.LoadFromReader(strings.NewReader(policyText))
}

// Load applies parsed policy statements.
// Statements are processed in dependency order:
// 1. First pass: vaults and role grants
// 2. Second pass: bindings and removals
func (l *Loader) Load(statements Statements) (*LoadResult, error) {
	result := &LoadResult{}

	for _, stmt := range statements {
		switch s := stmt.(type) {
		case Vault:
			if s.Id == "" {
				return nil, fmt.Errorf("vault statement is missing an id")
			}
			if l.vaults.VaultExists(s.Id) {
				continue
			}
			owner := s.Owner
			if owner == "" {
				owner = l.registry.Admin()
			}
			if err := l.vaults.CreateVault(s.Id, owner); err != nil {
				return nil, fmt.Errorf("failed to create vault %s: %w", s.Id, err)
			}
			result.CreatedVaults = append(result.CreatedVaults, s.Id)
		case Grant:
			if err := l.applyGrant(s, result); err != nil {
				return nil, err
			}
		}
	}

	for _, stmt := range statements {
		switch s := stmt.(type) {
		case Bind:
			if err := l.registry.SetStrategy(l.principal, s.Adapter, s.Vault, s.Force); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", s.Adapter, err)
			}
			result.Bindings++
		case Unbind:
			if err := l.registry.RemoveStrategy(l.principal, s.Adapter); err != nil {
				return nil, fmt.Errorf("failed to unbind %s: %w", s.Adapter, err)
			}
			result.Removals++
		}
	}

	return result, nil
}

func (l *Loader) applyGrant(g Grant, result *LoadResult) error {
	if g.Role != authz.RoleAdmin && g.Role != authz.RoleOperator {
		return fmt.Errorf("unknown role in grant: %s", g.Role)
	}
	if len(g.Members) == 0 {
		return fmt.Errorf("grant for role %s has no members", g.Role)
	}
	for _, member := range g.Members {
		if member == "" {
			return fmt.Errorf("grant for role %s has an empty member", g.Role)
		}
		if err := l.authzStore.GrantRole(g.Role, member); err != nil {
			return fmt.Errorf("failed to grant %s to %s: %w", g.Role, member, err)
		}
		result.Grants++
	}
	return nil
}
