package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/finbound/curator/pkg/store"
)

// MockVaultsStore implements store.VaultsStore for testing using testify/mock
type MockVaultsStore struct {
	mock.Mock
}

func NewMockVaultsStore() *MockVaultsStore {
	return &MockVaultsStore{}
}

func (m *MockVaultsStore) VaultExists(vaultID string) bool {
	args := m.Called(vaultID)
	return args.Bool(0)
}

func (m *MockVaultsStore) FetchVault(vaultID string) *store.Vault {
	args := m.Called(vaultID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*store.Vault)
}

func (m *MockVaultsStore) ListVaults(limit, offset int) []store.Vault {
	args := m.Called(limit, offset)
	return args.Get(0).([]store.Vault)
}

func (m *MockVaultsStore) CreateVault(vaultID, ownerID string) error {
	args := m.Called(vaultID, ownerID)
	return args.Error(0)
}

func (m *MockVaultsStore) IsAdapterAttached(vaultID, adapterID string) bool {
	args := m.Called(vaultID, adapterID)
	return args.Bool(0)
}

// MockAuthzStore implements store.AuthzStore for testing using testify/mock
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) HasRole(principalID, roleID string) bool {
	args := m.Called(principalID, roleID)
	return args.Bool(0)
}

func (m *MockAuthzStore) RoleExists(roleID string) bool {
	args := m.Called(roleID)
	return args.Bool(0)
}

func (m *MockAuthzStore) GrantRole(roleID, principalID string) error {
	args := m.Called(roleID, principalID)
	return args.Error(0)
}

func (m *MockAuthzStore) RevokeRole(roleID, principalID string) error {
	args := m.Called(roleID, principalID)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
