package gorm

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finbound/curator/pkg/store"
)

// newMockDB wraps a sqlmock connection with GORM
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	var (
		db   *sql.DB
		mock sqlmock.Sqlmock
		err  error
	)

	db, mock, err = sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestBindingsStoreVaultFor(t *testing.T) {
	t.Run("bound adapter", func(t *testing.T) {
		db, mock := newMockDB(t)
		bindingsStore := NewBindingsStore(db)

		rows := sqlmock.NewRows([]string{"vault_id"}).AddRow("vault/usdc-prime")
		mock.ExpectQuery(`SELECT vault_id FROM bindings WHERE adapter_id = \$1`).
			WithArgs("adapter/aave-v3").
			WillReturnRows(rows)

		vault, bound := bindingsStore.VaultFor("adapter/aave-v3")
		require.True(t, bound)
		assert.Equal(t, "vault/usdc-prime", vault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unbound adapter", func(t *testing.T) {
		db, mock := newMockDB(t)
		bindingsStore := NewBindingsStore(db)

		mock.ExpectQuery(`SELECT vault_id FROM bindings WHERE adapter_id = \$1`).
			WithArgs("adapter/unknown").
			WillReturnRows(sqlmock.NewRows([]string{"vault_id"}))

		_, bound := bindingsStore.VaultFor("adapter/unknown")
		assert.False(t, bound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBindingsStoreListBindings(t *testing.T) {
	db, mock := newMockDB(t)
	bindingsStore := NewBindingsStore(db)

	rows := sqlmock.NewRows([]string{"adapter_id", "vault_id"}).
		AddRow("adapter/aave-v3", "vault/usdc-prime").
		AddRow("adapter/compound", "vault/usdc-degen")
	mock.ExpectQuery(`SELECT adapter_id, vault_id FROM bindings ORDER BY adapter_id LIMIT \$1`).
		WithArgs(25).
		WillReturnRows(rows)

	bindings := bindingsStore.ListBindings(25, 0)
	require.Len(t, bindings, 2)
	assert.Equal(t, "adapter/aave-v3", bindings[0].Adapter)
	assert.Equal(t, "vault/usdc-prime", bindings[0].Vault)
	assert.Equal(t, "adapter/compound", bindings[1].Adapter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindingsStoreCountBindings(t *testing.T) {
	db, mock := newMockDB(t)
	bindingsStore := NewBindingsStore(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bindings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	assert.Equal(t, 3, bindingsStore.CountBindings())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindingsStorePut(t *testing.T) {
	db, mock := newMockDB(t)
	bindingsStore := NewBindingsStore(db)

	mock.ExpectExec(`INSERT INTO bindings \(adapter_id, vault_id\) VALUES \(\$1, \$2\)`).
		WithArgs("adapter/aave-v3", "vault/usdc-prime").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := bindingsStore.Put("adapter/aave-v3", "vault/usdc-prime")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindingsStoreDelete(t *testing.T) {
	db, mock := newMockDB(t)
	bindingsStore := NewBindingsStore(db)

	mock.ExpectExec(`DELETE FROM bindings WHERE adapter_id = \$1`).
		WithArgs("adapter/aave-v3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := bindingsStore.Delete("adapter/aave-v3")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindingsStoreInTransaction(t *testing.T) {
	t.Run("commit on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		bindingsStore := NewBindingsStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bindings \(adapter_id, vault_id\) VALUES \(\$1, \$2\)`).
			WithArgs("adapter/aave-v3", "vault/usdc-prime").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := bindingsStore.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
			return tx.Put("adapter/aave-v3", "vault/usdc-prime")
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		bindingsStore := NewBindingsStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("attach failed")
		err := bindingsStore.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
