package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/db"
	"github.com/finbound/curator/pkg/policy"
	"github.com/finbound/curator/pkg/registry"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

// policyCmd represents the policy command
var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Manage curation policy",
	Long:  `Load and watch curation policy files.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'policy' requires a subcommand (load, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
}

// newPolicyLoader builds a loader over the database-backed stores. The
// registry honors the same silent-rebind setting as the server, so a
// policy load behaves identically to the equivalent API calls.
func newPolicyLoader(principal string) (*policy.Loader, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}

	bindingsStore := gormstore.NewBindingsStore(database)
	vaultsStore := gormstore.NewVaultsStore(database)
	authzStore := gormstore.NewAuthzStore(database)

	var opts []registry.Option
	if config.Get().AllowSilentRebind {
		opts = append(opts, registry.WithSilentRebind())
	}
	reg := registry.New(adminPrincipal(), bindingsStore, authz.NewPolicy(authzStore), opts...)

	return policy.NewLoader(reg, vaultsStore, authzStore, principal), nil
}
