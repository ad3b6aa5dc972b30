package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/db"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

// roleGrantCmd represents the role grant command
var roleGrantCmd = &cobra.Command{
	Use:   "grant <role> <principal>",
	Short: "Grant a role to a principal",
	Long: `Grant a role to a principal.

Valid roles are "admin" and "operator". Only principals holding the
operator role may change strategy bindings.

Example:
  curatorctl role grant operator ops@curator`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		role := args[0]
		principal := args[1]

		if err := grantRole(role, principal); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant role: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Granted %s to %s\n", role, principal)
	},
}

func init() {
	roleCmd.AddCommand(roleGrantCmd)
}

func grantRole(role, principal string) error {
	if role != authz.RoleAdmin && role != authz.RoleOperator {
		return fmt.Errorf("unknown role: %s", role)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	return gormstore.NewAuthzStore(database).GrantRole(role, principal)
}
