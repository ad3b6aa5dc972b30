// Package store provides storage abstractions for the curator service.
//
// This package defines interfaces for database operations, allowing the
// registry core and the server endpoints to be decoupled from the specific
// database implementation. This enables easier testing with mocks and
// in-memory backends.
//
// # Available Stores
//
//   - BindingsStore: the adapter-to-vault map and its transactional surface
//   - VaultsStore: vault registration and attached-adapter queries
//   - AuthzStore: role grants for principals
//   - HealthStore: connectivity checks
//
// # Usage
//
//	bindings := gorm.NewBindingsStore(db)
//	vault, bound := bindings.VaultFor("adapter/aave-v3")
//	if !bound {
//	    // adapter is unbound
//	}
package store
