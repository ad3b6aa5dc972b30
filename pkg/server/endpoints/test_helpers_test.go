package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/server"
	"github.com/finbound/curator/pkg/server/middleware"
	"github.com/finbound/curator/pkg/store/memory"
)

const (
	testAdmin    = "root@curator"
	testOperator = "ops@curator"
	testOutsider = "mallory@curator"
)

type okHealthStore struct{}

func (okHealthStore) CheckConnectivity() error { return nil }

// newTestServer builds a server on the in-memory backend with two vaults
// registered and the canonical admin and operator roles granted.
func newTestServer(t *testing.T) (*server.Server, *memory.Backend) {
	t.Helper()

	backend := memory.NewBackend()
	require.NoError(t, backend.GrantRole(authz.RoleAdmin, testAdmin))
	require.NoError(t, backend.GrantRole(authz.RoleOperator, testOperator))
	require.NoError(t, backend.CreateVault("vault/usdc-prime", testAdmin))
	require.NoError(t, backend.CreateVault("vault/usdc-degen", testAdmin))

	reg := registry.New(testAdmin, backend, authz.NewPolicy(backend))

	cfg := &config.CuratorConfig{APIListLimitMax: 1000}
	auth := middleware.NewTokenAuthenticator([]byte("endpoint-test-key"))

	s := server.NewServer(reg, backend, backend, backend, okHealthStore{}, cfg, auth, nil, "127.0.0.1", "0")
	RegisterAll(s)
	return s, backend
}

// authedRequest builds a request carrying a freshly issued token for the
// given principal.
func authedRequest(t *testing.T, s *server.Server, method, target, body string, principal string) *http.Request {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	token, err := s.Auth.IssueToken(principal, time.Minute)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
