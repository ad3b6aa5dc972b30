package gorm

import (
	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/store"
)

// Ensure VaultDirectory implements store.VaultDirectory
var _ store.VaultDirectory = (*VaultDirectory)(nil)

// VaultDirectory resolves vault identities to handles backed by the
// vault_adapters table. Handles created inside a transaction inherit it.
type VaultDirectory struct {
	db *gorm.DB
}

// NewVaultDirectory creates a new VaultDirectory
func NewVaultDirectory(db *gorm.DB) *VaultDirectory {
	return &VaultDirectory{db: db}
}

// Vault returns a handle for a registered vault
func (d *VaultDirectory) Vault(vaultID string) (store.VaultHandle, error) {
	var exists bool
	d.db.Raw(`SELECT EXISTS(SELECT 1 FROM vaults WHERE vault_id = ?)`, vaultID).Scan(&exists)
	if !exists {
		return nil, store.ErrVaultNotFound
	}
	return &vaultHandle{db: d.db, vaultID: vaultID}, nil
}

type vaultHandle struct {
	db      *gorm.DB
	vaultID string
}

func (h *vaultHandle) AttachAdapter(adapterID string) error {
	return h.db.Exec(`
		INSERT INTO vault_adapters (vault_id, adapter_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, h.vaultID, adapterID).Error
}

func (h *vaultHandle) DetachAdapter(adapterID string) error {
	return h.db.Exec(`
		DELETE FROM vault_adapters WHERE vault_id = ? AND adapter_id = ?
	`, h.vaultID, adapterID).Error
}
