// Package registry implements the curator's binding registry: the
// authoritative adapter-to-vault map and the access-controlled operations
// that mutate it.
//
// Every adapter maps to at most one vault at a time. Reassigning a bound
// adapter requires either an explicit removal first or the force flag on
// SetStrategy; otherwise the call fails with AlreadyBoundError. On a
// successful assignment the registry notifies the affected vaults (detach
// from the previous vault, attach to the new one) in the same transaction
// as the map write, so the map and the vaults' adapter sets never diverge.
//
// The historical contract performed none of these checks: a second
// SetStrategy call silently overwrote the binding and never told the
// previous vault to let go of the adapter. That behavior is preserved
// behind WithSilentRebind for compatibility testing and is off by default.
package registry
