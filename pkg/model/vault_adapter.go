package model

// VaultAdapter records that a vault considers an adapter attached.
// Rows here are written together with the binding row; the pair going
// out of sync is exactly the defect the registry guards against.
type VaultAdapter struct {
	VaultID   string `gorm:"column:vault_id;primaryKey"`
	AdapterID string `gorm:"column:adapter_id;primaryKey"`
}

func (VaultAdapter) TableName() string {
	return "vault_adapters"
}
