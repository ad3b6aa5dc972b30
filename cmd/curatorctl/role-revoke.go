package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/db"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

// roleRevokeCmd represents the role revoke command
var roleRevokeCmd = &cobra.Command{
	Use:   "revoke <role> <principal>",
	Short: "Revoke a role from a principal",
	Long: `Revoke a role from a principal.

Example:
  curatorctl role revoke operator ops@curator`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		role := args[0]
		principal := args[1]

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		if err := gormstore.NewAuthzStore(database).RevokeRole(role, principal); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to revoke role: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Revoked %s from %s\n", role, principal)
	},
}

func init() {
	roleCmd.AddCommand(roleRevokeCmd)
}
