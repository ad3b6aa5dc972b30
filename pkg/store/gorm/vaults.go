package gorm

import (
	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/model"
	"github.com/finbound/curator/pkg/store"
)

// Ensure VaultsStore implements store.VaultsStore
var _ store.VaultsStore = (*VaultsStore)(nil)

// VaultsStore implements store.VaultsStore using GORM
type VaultsStore struct {
	db *gorm.DB
}

// NewVaultsStore creates a new VaultsStore
func NewVaultsStore(db *gorm.DB) *VaultsStore {
	return &VaultsStore{db: db}
}

// VaultExists checks if a vault is registered
func (s *VaultsStore) VaultExists(vaultID string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM vaults WHERE vault_id = ?)`, vaultID).Scan(&exists)
	return exists
}

// FetchVault retrieves a vault and its attached adapter set
func (s *VaultsStore) FetchVault(vaultID string) *store.Vault {
	var row model.Vault
	result := s.db.Raw(`
		SELECT vault_id, owner_id FROM vaults WHERE vault_id = ?
	`, vaultID).Scan(&row)

	if result.Error != nil || row.VaultID == "" {
		return nil
	}

	return &store.Vault{
		ID:       row.VaultID,
		Owner:    row.OwnerID,
		Adapters: s.fetchAdapters(vaultID),
	}
}

// ListVaults returns registered vaults ordered by ID
func (s *VaultsStore) ListVaults(limit, offset int) []store.Vault {
	query := `SELECT vault_id, owner_id FROM vaults ORDER BY vault_id`
	args := []interface{}{}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if offset > 0 {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	var rows []model.Vault
	s.db.Raw(query, args...).Scan(&rows)

	vaults := make([]store.Vault, 0, len(rows))
	for _, row := range rows {
		vaults = append(vaults, store.Vault{
			ID:       row.VaultID,
			Owner:    row.OwnerID,
			Adapters: s.fetchAdapters(row.VaultID),
		})
	}
	return vaults
}

// CreateVault registers a vault identity
func (s *VaultsStore) CreateVault(vaultID, ownerID string) error {
	return s.db.Exec(`
		INSERT INTO vaults (vault_id, owner_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, vaultID, ownerID).Error
}

// IsAdapterAttached checks if a vault considers an adapter attached
func (s *VaultsStore) IsAdapterAttached(vaultID, adapterID string) bool {
	var attached bool
	s.db.Raw(`
		SELECT EXISTS(SELECT 1 FROM vault_adapters WHERE vault_id = ? AND adapter_id = ?)
	`, vaultID, adapterID).Scan(&attached)
	return attached
}

func (s *VaultsStore) fetchAdapters(vaultID string) []string {
	var rows []model.VaultAdapter
	s.db.Raw(`
		SELECT adapter_id FROM vault_adapters WHERE vault_id = ? ORDER BY adapter_id
	`, vaultID).Scan(&rows)

	adapters := make([]string, 0, len(rows))
	for _, row := range rows {
		adapters = append(adapters, row.AdapterID)
	}
	return adapters
}
