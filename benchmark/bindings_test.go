package benchmark

import (
	"fmt"
	"testing"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/store/memory"
)

const (
	benchAdmin    = "root@curator"
	benchOperator = "ops@curator"
)

func newBenchRegistry(b *testing.B, opts ...registry.Option) (*registry.Registry, *memory.Backend) {
	b.Helper()

	backend := memory.NewBackend()
	if err := backend.GrantRole(authz.RoleOperator, benchOperator); err != nil {
		b.Fatal(err)
	}
	if err := backend.CreateVault("vault/usdc-prime", benchOperator); err != nil {
		b.Fatal(err)
	}
	if err := backend.CreateVault("vault/usdc-degen", benchOperator); err != nil {
		b.Fatal(err)
	}

	return registry.New(benchAdmin, backend, authz.NewPolicy(backend), opts...), backend
}

func BenchmarkSetStrategy(b *testing.B) {
	b.Run("fresh bindings", func(b *testing.B) {
		reg, _ := newBenchRegistry(b)

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			adapter := fmt.Sprintf("adapter/bench-%d", i)
			if err := reg.SetStrategy(benchOperator, adapter, "vault/usdc-prime", false); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("forced rebinds", func(b *testing.B) {
		reg, _ := newBenchRegistry(b)
		if err := reg.SetStrategy(benchOperator, "adapter/aave-v3", "vault/usdc-prime", false); err != nil {
			b.Fatal(err)
		}
		vaults := [2]string{"vault/usdc-degen", "vault/usdc-prime"}

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if err := reg.SetStrategy(benchOperator, "adapter/aave-v3", vaults[i%2], true); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("rejected rebinds", func(b *testing.B) {
		reg, _ := newBenchRegistry(b)
		if err := reg.SetStrategy(benchOperator, "adapter/aave-v3", "vault/usdc-prime", false); err != nil {
			b.Fatal(err)
		}

		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if err := reg.SetStrategy(benchOperator, "adapter/aave-v3", "vault/usdc-degen", false); err == nil {
				b.Fatal("expected rebind conflict")
			}
		}
	})
}

func BenchmarkVaultFor(b *testing.B) {
	reg, _ := newBenchRegistry(b)
	for i := 0; i < 1000; i++ {
		adapter := fmt.Sprintf("adapter/bench-%d", i)
		if err := reg.SetStrategy(benchOperator, adapter, "vault/usdc-prime", false); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, ok := reg.VaultFor(fmt.Sprintf("adapter/bench-%d", i%1000)); !ok {
			b.Fatal("binding missing")
		}
	}
}
