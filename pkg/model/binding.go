package model

import "time"

// Binding is the authoritative adapter-to-vault assignment record
type Binding struct {
	AdapterID string    `gorm:"column:adapter_id;primaryKey"`
	VaultID   string    `gorm:"column:vault_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Binding) TableName() string {
	return "bindings"
}
