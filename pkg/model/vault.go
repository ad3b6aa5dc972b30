package model

import "time"

// Vault represents a registered capital pool that adapters attach to
type Vault struct {
	VaultID   string    `gorm:"column:vault_id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Vault) TableName() string {
	return "vaults"
}
