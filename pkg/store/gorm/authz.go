package gorm

import (
	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/model"
	"github.com/finbound/curator/pkg/store"
)

// Ensure AuthzStore implements store.AuthzStore
var _ store.AuthzStore = (*AuthzStore)(nil)

// AuthzStore implements store.AuthzStore using GORM
type AuthzStore struct {
	db *gorm.DB
}

// NewAuthzStore creates a new AuthzStore
func NewAuthzStore(db *gorm.DB) *AuthzStore {
	return &AuthzStore{db: db}
}

// HasRole checks if a principal holds a role
func (s *AuthzStore) HasRole(principalID, roleID string) bool {
	var membership model.RoleMembership
	tx := s.db.Where("role_id = ? AND member_id = ?", roleID, principalID).First(&membership)
	return tx.Error == nil
}

// RoleExists checks if a role label is known
func (s *AuthzStore) RoleExists(roleID string) bool {
	var role model.Role
	tx := s.db.Where("role_id = ?", roleID).First(&role)
	return tx.Error == nil
}

// GrantRole grants a role to a principal
func (s *AuthzStore) GrantRole(roleID, principalID string) error {
	return s.db.Exec(`
		INSERT INTO role_memberships (role_id, member_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, roleID, principalID).Error
}

// RevokeRole removes a role grant from a principal
func (s *AuthzStore) RevokeRole(roleID, principalID string) error {
	return s.db.Exec(`
		DELETE FROM role_memberships WHERE role_id = ? AND member_id = ?
	`, roleID, principalID).Error
}
