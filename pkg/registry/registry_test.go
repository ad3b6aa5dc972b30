package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/store"
	"github.com/finbound/curator/pkg/store/memory"
)

const (
	adminID    = "root@curator"
	operatorID = "ops@curator"
	outsiderID = "mallory@curator"

	adapterA = "adapter/aave-v3"
	vault1   = "vault/usdc-prime"
	vault2   = "vault/usdc-degen"
)

func newTestBackend(t *testing.T) *memory.Backend {
	t.Helper()

	backend := memory.NewBackend()
	require.NoError(t, backend.CreateVault(vault1, adminID))
	require.NoError(t, backend.CreateVault(vault2, adminID))
	require.NoError(t, backend.GrantRole(authz.RoleAdmin, adminID))
	require.NoError(t, backend.GrantRole(authz.RoleOperator, operatorID))
	return backend
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *memory.Backend) {
	t.Helper()

	backend := newTestBackend(t)
	return New(adminID, backend, authz.NewPolicy(backend), opts...), backend
}

func TestSetStrategy(t *testing.T) {
	t.Run("creates a binding and attaches the adapter", func(t *testing.T) {
		reg, backend := newTestRegistry(t)

		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		vault, bound := reg.VaultFor(adapterA)
		assert.True(t, bound)
		assert.Equal(t, vault1, vault)
		assert.True(t, backend.IsAdapterAttached(vault1, adapterA))
	})

	t.Run("rejects rebinding without force", func(t *testing.T) {
		reg, backend := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		err := reg.SetStrategy(operatorID, adapterA, vault2, false)

		var alreadyBound *AlreadyBoundError
		require.ErrorAs(t, err, &alreadyBound)
		assert.Equal(t, adapterA, alreadyBound.Adapter)
		assert.Equal(t, vault1, alreadyBound.Vault)

		vault, _ := reg.VaultFor(adapterA)
		assert.Equal(t, vault1, vault)
		assert.True(t, backend.IsAdapterAttached(vault1, adapterA))
		assert.False(t, backend.IsAdapterAttached(vault2, adapterA))
	})

	t.Run("rebinding to the same vault is a no-op", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		assert.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))
	})

	t.Run("force rebinds and moves the attachment", func(t *testing.T) {
		reg, backend := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault2, true))

		vault, _ := reg.VaultFor(adapterA)
		assert.Equal(t, vault2, vault)
		assert.False(t, backend.IsAdapterAttached(vault1, adapterA))
		assert.True(t, backend.IsAdapterAttached(vault2, adapterA))
	})

	t.Run("unknown vault leaves the map unchanged", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		err := reg.SetStrategy(operatorID, adapterA, "vault/ghost", false)

		require.ErrorIs(t, err, store.ErrVaultNotFound)
		_, bound := reg.VaultFor(adapterA)
		assert.False(t, bound)
	})

	t.Run("empty identities are rejected", func(t *testing.T) {
		reg, _ := newTestRegistry(t)

		var invalid *InvalidIdentityError
		require.ErrorAs(t, reg.SetStrategy(operatorID, "", vault1, false), &invalid)
		assert.Equal(t, "adapter", invalid.Field)

		require.ErrorAs(t, reg.SetStrategy(operatorID, adapterA, "", false), &invalid)
		assert.Equal(t, "vault", invalid.Field)
	})

	t.Run("non-operator principals cannot mutate", func(t *testing.T) {
		reg, backend := newTestRegistry(t)

		for _, principal := range []string{outsiderID, adminID, ""} {
			err := reg.SetStrategy(principal, adapterA, vault1, false)

			var unauthorized *UnauthorizedError
			require.ErrorAs(t, err, &unauthorized, "principal %q", principal)
			assert.Equal(t, authz.RoleOperator, unauthorized.Role)
		}

		_, bound := reg.VaultFor(adapterA)
		assert.False(t, bound)
		assert.False(t, backend.IsAdapterAttached(vault1, adapterA))
	})
}

func TestRemoveStrategy(t *testing.T) {
	t.Run("detaches the adapter and deletes the binding", func(t *testing.T) {
		reg, backend := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		require.NoError(t, reg.RemoveStrategy(operatorID, adapterA))

		_, bound := reg.VaultFor(adapterA)
		assert.False(t, bound)
		assert.False(t, backend.IsAdapterAttached(vault1, adapterA))
	})

	t.Run("remove then set rebinds cleanly", func(t *testing.T) {
		reg, backend := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		require.NoError(t, reg.RemoveStrategy(operatorID, adapterA))
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault2, false))

		vault, _ := reg.VaultFor(adapterA)
		assert.Equal(t, vault2, vault)
		assert.False(t, backend.IsAdapterAttached(vault1, adapterA))
		assert.True(t, backend.IsAdapterAttached(vault2, adapterA))
	})

	t.Run("second removal fails with NotBoundError", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))
		require.NoError(t, reg.RemoveStrategy(operatorID, adapterA))

		var notBound *NotBoundError
		require.ErrorAs(t, reg.RemoveStrategy(operatorID, adapterA), &notBound)
		assert.Equal(t, adapterA, notBound.Adapter)
	})

	t.Run("non-operator principals cannot remove", func(t *testing.T) {
		reg, _ := newTestRegistry(t)
		require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

		var unauthorized *UnauthorizedError
		require.ErrorAs(t, reg.RemoveStrategy(outsiderID, adapterA), &unauthorized)

		vault, bound := reg.VaultFor(adapterA)
		assert.True(t, bound)
		assert.Equal(t, vault1, vault)
	})
}

// TestSilentRebindCompat pins down the historical defect: with the guard
// disabled, a second SetStrategy call overwrites the binding and the
// previous vault is never told to detach the adapter.
func TestSilentRebindCompat(t *testing.T) {
	reg, backend := newTestRegistry(t, WithSilentRebind())

	require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))
	require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault2, false))

	vault, _ := reg.VaultFor(adapterA)
	assert.Equal(t, vault2, vault, "overwrite succeeds silently")
	assert.True(t, backend.IsAdapterAttached(vault1, adapterA),
		"previous vault still considers the adapter attached")
	assert.True(t, backend.IsAdapterAttached(vault2, adapterA))
}

// flakyBackend injects attach failures into the transactional path
type flakyBackend struct {
	*memory.Backend
	attachErr error
}

func (f *flakyBackend) InTransaction(fn func(tx store.BindingsStore, vaults store.VaultDirectory) error) error {
	return f.Backend.InTransaction(func(tx store.BindingsStore, vaults store.VaultDirectory) error {
		return fn(tx, &failingVaults{inner: vaults, err: f.attachErr})
	})
}

type failingVaults struct {
	inner store.VaultDirectory
	err   error
}

func (d *failingVaults) Vault(vaultID string) (store.VaultHandle, error) {
	handle, err := d.inner.Vault(vaultID)
	if err != nil {
		return nil, err
	}
	return &failingHandle{inner: handle, err: d.err}, nil
}

type failingHandle struct {
	inner store.VaultHandle
	err   error
}

func (h *failingHandle) AttachAdapter(adapterID string) error {
	return h.err
}

func (h *failingHandle) DetachAdapter(adapterID string) error {
	return h.inner.DetachAdapter(adapterID)
}

func TestReassignmentAtomicity(t *testing.T) {
	backend := newTestBackend(t)
	reg := New(adminID, backend, authz.NewPolicy(backend))
	require.NoError(t, reg.SetStrategy(operatorID, adapterA, vault1, false))

	attachErr := errors.New("vault refused adapter")
	flaky := &flakyBackend{Backend: backend, attachErr: attachErr}
	flakyReg := New(adminID, flaky, authz.NewPolicy(backend))

	err := flakyReg.SetStrategy(operatorID, adapterA, vault2, true)
	require.ErrorIs(t, err, attachErr)

	// The detach from vault1 ran before the failed attach; the rollback
	// must restore it together with the map entry.
	vault, bound := reg.VaultFor(adapterA)
	assert.True(t, bound)
	assert.Equal(t, vault1, vault)
	assert.True(t, backend.IsAdapterAttached(vault1, adapterA))
	assert.False(t, backend.IsAdapterAttached(vault2, adapterA))
}

func TestAdminIsFixedAtConstruction(t *testing.T) {
	reg, _ := newTestRegistry(t)
	assert.Equal(t, adminID, reg.Admin())
}
