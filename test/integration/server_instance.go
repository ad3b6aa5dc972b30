package integration

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/server"
	"github.com/finbound/curator/pkg/server/endpoints"
	"github.com/finbound/curator/pkg/server/middleware"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

const testAdminPrincipal = "root@curator"

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(db *gorm.DB, auth *middleware.TokenAuthenticator, port string) (*server.Server, context.CancelFunc, error) {
	_, cancel := context.WithCancel(context.Background())

	bindingsStore := gormstore.NewBindingsStore(db)
	vaultsStore := gormstore.NewVaultsStore(db)
	authzStore := gormstore.NewAuthzStore(db)
	healthStore := gormstore.NewHealthStore(db)

	policy := authz.NewPolicy(authzStore)
	reg := registry.New(testAdminPrincipal, bindingsStore, policy)

	cfg := config.Get()
	s := server.NewServer(reg, bindingsStore, vaultsStore, authzStore, healthStore, cfg, auth, db, "127.0.0.1", port)
	endpoints.RegisterAll(s)

	go func() {
		_ = s.Start()
	}()

	return s, cancel, nil
}

// startBinary starts the curatorctl server binary
func startBinary(binaryPath, dbURL string, signingKey []byte, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since the test setup already ran migrations
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"CURATOR_TOKEN_SIGNING_KEY="+base64.StdEncoding.EncodeToString(signingKey),
		"CURATOR_ADMIN="+testAdminPrincipal,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
