package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/db"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <admin> <operator>",
	Short: "Bootstrap the admin and operator principals",
	Long: `Bootstrap the admin and operator principals.

Grants the admin role to the first principal and the operator role to the
second. The admin principal is the one the server constructs the registry
with (CURATOR_ADMIN); granting it here keeps /whoami and audit output
consistent.

Example:
  curatorctl init root@curator ops@curator`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		admin := args[0]
		operator := args[1]

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		authzStore := gormstore.NewAuthzStore(database)

		if err := authzStore.GrantRole(authz.RoleAdmin, admin); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant admin role: %v\n", err)
			os.Exit(1)
		}
		if err := authzStore.GrantRole(authz.RoleOperator, operator); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant operator role: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Granted admin to %s\n", admin)
		fmt.Printf("Granted operator to %s\n", operator)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
