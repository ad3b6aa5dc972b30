package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/store/memory"
)

const (
	testAdmin    = "root@curator"
	testOperator = "ops@curator"
)

func newTestLoader(t *testing.T) (*Loader, *memory.Backend) {
	t.Helper()

	backend := memory.NewBackend()
	require.NoError(t, backend.GrantRole(authz.RoleOperator, testOperator))
	reg := registry.New(testAdmin, backend, authz.NewPolicy(backend))
	return NewLoader(reg, backend, backend, testOperator), backend
}

func TestLoaderBootstrap(t *testing.T) {
	loader, backend := newTestLoader(t)

	result, err := loader.LoadFromString(`
- !vault vault/usdc-prime
- !vault
  id: vault/usdc-degen
  owner: treasury@curator
- !grant
  role: operator
  member: relay@curator
- !bind
  adapter: adapter/aave-v3
  vault: vault/usdc-prime
`)
	require.NoError(t, err)

	assert.Equal(t, []string{"vault/usdc-prime", "vault/usdc-degen"}, result.CreatedVaults)
	assert.Equal(t, 1, result.Grants)
	assert.Equal(t, 1, result.Bindings)

	// Vault without an owner defaults to the registry admin
	assert.Equal(t, testAdmin, backend.FetchVault("vault/usdc-prime").Owner)
	assert.Equal(t, "treasury@curator", backend.FetchVault("vault/usdc-degen").Owner)

	assert.True(t, backend.HasRole("relay@curator", authz.RoleOperator))

	vault, bound := backend.VaultFor("adapter/aave-v3")
	require.True(t, bound)
	assert.Equal(t, "vault/usdc-prime", vault)
	assert.True(t, backend.IsAdapterAttached("vault/usdc-prime", "adapter/aave-v3"))
}

func TestLoaderBindGoesThroughTheGuard(t *testing.T) {
	loader, backend := newTestLoader(t)

	_, err := loader.LoadFromString(`
- !vault vault/usdc-prime
- !vault vault/usdc-degen
- !bind
  adapter: adapter/aave-v3
  vault: vault/usdc-prime
`)
	require.NoError(t, err)

	// A second load pointing the adapter elsewhere must not overwrite
	_, err = loader.LoadFromString(`
- !bind
  adapter: adapter/aave-v3
  vault: vault/usdc-degen
`)
	require.Error(t, err)
	var alreadyBound *registry.AlreadyBoundError
	assert.ErrorAs(t, err, &alreadyBound)

	vault, _ := backend.VaultFor("adapter/aave-v3")
	assert.Equal(t, "vault/usdc-prime", vault)

	// With force the rebind is explicit and goes through
	result, err := loader.LoadFromString(`
- !bind
  adapter: adapter/aave-v3
  vault: vault/usdc-degen
  force: true
`)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Bindings)

	vault, _ = backend.VaultFor("adapter/aave-v3")
	assert.Equal(t, "vault/usdc-degen", vault)
}

func TestLoaderUnbind(t *testing.T) {
	loader, backend := newTestLoader(t)

	_, err := loader.LoadFromString(`
- !vault vault/usdc-prime
- !bind
  adapter: adapter/aave-v3
  vault: vault/usdc-prime
`)
	require.NoError(t, err)

	result, err := loader.LoadFromString(`
- !unbind adapter/aave-v3
`)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removals)

	_, bound := backend.VaultFor("adapter/aave-v3")
	assert.False(t, bound)
}

func TestLoaderExistingVaultIsKept(t *testing.T) {
	loader, backend := newTestLoader(t)
	require.NoError(t, backend.CreateVault("vault/usdc-prime", "treasury@curator"))

	result, err := loader.LoadFromString(`
- !vault vault/usdc-prime
`)
	require.NoError(t, err)
	assert.Empty(t, result.CreatedVaults)
	assert.Equal(t, "treasury@curator", backend.FetchVault("vault/usdc-prime").Owner)
}

func TestLoaderValidation(t *testing.T) {
	loader, _ := newTestLoader(t)

	t.Run("unknown role", func(t *testing.T) {
		_, err := loader.LoadFromString(`
- !grant
  role: superuser
  member: mallory@curator
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown role")
	})

	t.Run("grant without members", func(t *testing.T) {
		_, err := loader.LoadFromString(`
- !grant
  role: operator
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no members")
	})

	t.Run("vault without id", func(t *testing.T) {
		_, err := loader.LoadFromString(`
- !vault
  owner: root@curator
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing an id")
	})

	t.Run("bind to unknown vault", func(t *testing.T) {
		_, err := loader.LoadFromString(`
- !bind
  adapter: adapter/aave-v3
  vault: vault/nope
`)
		require.Error(t, err)
	})
}
