package gorm

import (
	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/model"
	"github.com/finbound/curator/pkg/store"
)

// Ensure BindingsStore implements store.BindingsStore
var _ store.BindingsStore = (*BindingsStore)(nil)

// BindingsStore implements store.BindingsStore using GORM
type BindingsStore struct {
	db *gorm.DB
}

// NewBindingsStore creates a new BindingsStore
func NewBindingsStore(db *gorm.DB) *BindingsStore {
	return &BindingsStore{db: db}
}

// VaultFor returns the vault currently bound to an adapter
func (s *BindingsStore) VaultFor(adapterID string) (string, bool) {
	var row model.Binding
	result := s.db.Raw(`
		SELECT vault_id FROM bindings WHERE adapter_id = ?
	`, adapterID).Scan(&row)

	if result.Error != nil || row.VaultID == "" {
		return "", false
	}
	return row.VaultID, true
}

// ListBindings returns bindings ordered by adapter
func (s *BindingsStore) ListBindings(limit, offset int) []store.Binding {
	query := `SELECT adapter_id, vault_id FROM bindings ORDER BY adapter_id`
	args := []interface{}{}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if offset > 0 {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	var rows []model.Binding
	s.db.Raw(query, args...).Scan(&rows)

	bindings := make([]store.Binding, 0, len(rows))
	for _, row := range rows {
		bindings = append(bindings, store.Binding{
			Adapter: row.AdapterID,
			Vault:   row.VaultID,
		})
	}
	return bindings
}

// CountBindings returns the number of bindings
func (s *BindingsStore) CountBindings() int {
	var count int
	s.db.Raw(`SELECT COUNT(*) FROM bindings`).Scan(&count)
	return count
}

// Put writes the binding row for an adapter, replacing any previous row
func (s *BindingsStore) Put(adapterID, vaultID string) error {
	return s.db.Exec(`
		INSERT INTO bindings (adapter_id, vault_id) VALUES (?, ?)
		ON CONFLICT (adapter_id) DO UPDATE SET vault_id = EXCLUDED.vault_id, updated_at = now()
	`, adapterID, vaultID).Error
}

// Delete removes the binding row for an adapter
func (s *BindingsStore) Delete(adapterID string) error {
	return s.db.Exec(`DELETE FROM bindings WHERE adapter_id = ?`, adapterID).Error
}

// InTransaction runs fn inside a database transaction. The tx-scoped
// store and vault directory share the transaction, so binding writes and
// vault notifications commit together or roll back together.
func (s *BindingsStore) InTransaction(fn func(tx store.BindingsStore, vaults store.VaultDirectory) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewBindingsStore(tx), NewVaultDirectory(tx))
	})
}
