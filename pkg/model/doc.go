// Package model defines the database models for the curator service.
//
// This package contains GORM models that map to the curator database schema.
//
// # Core Models
//
//   - Role: grantable role labels (admin, operator)
//   - RoleMembership: principal-to-role grants
//   - Vault: registered capital pools that adapters attach to
//   - VaultAdapter: the per-vault set of attached adapters
//   - Binding: the adapter-to-vault assignment record
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - roles: grantable role labels
//   - role_memberships: which principal holds which role
//   - vaults: registered vault identities
//   - vault_adapters: adapters each vault currently considers attached
//   - bindings: the authoritative adapter-to-vault map
//   - messages: audit trail (optional, see pkg/audit)
package model
