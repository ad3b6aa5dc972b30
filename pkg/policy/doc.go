// Package policy provides curation policy parsing and loading.
//
// Policies declare the vaults, role grants, and strategy bindings of a
// deployment in YAML, so an environment can be bootstrapped or repaired
// from a single reviewed file.
//
// # Policy Format
//
// Policies are written in YAML and can define:
//
//   - Vaults: Vault identities the registry may bind to (!vault)
//   - Grants: Role memberships (!grant)
//   - Binds: Adapter strategies (!bind)
//   - Unbinds: Strategy removals (!unbind)
//
// # Example Policy
//
//   - !vault vault/usdc-prime
//   - !vault
//     id: vault/usdc-degen
//     owner: root@curator
//   - !grant
//     role: operator
//     member: ops@curator
//   - !bind
//     adapter: adapter/aave-v3
//     vault: vault/usdc-prime
//
// # Loading Policies
//
//	loader := policy.NewLoader(reg, vaultsStore, authzStore)
//	result, err := loader.LoadFromReader(file)
//
// Binding statements go through the registry, so a !bind that would
// silently overwrite an existing strategy fails unless it carries
// force: true.
package policy
