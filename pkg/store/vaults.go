package store

// Vault represents a registered vault with its attached adapters
type Vault struct {
	ID       string
	Owner    string
	Adapters []string
}

// VaultsStore abstracts vault storage operations
type VaultsStore interface {
	// VaultExists checks if a vault is registered
	VaultExists(vaultID string) bool

	// FetchVault retrieves a vault and its attached adapter set
	FetchVault(vaultID string) *Vault

	// ListVaults returns registered vaults ordered by ID
	ListVaults(limit, offset int) []Vault

	// CreateVault registers a vault identity
	CreateVault(vaultID, ownerID string) error

	// IsAdapterAttached checks if a vault considers an adapter attached
	IsAdapterAttached(vaultID, adapterID string) bool
}
