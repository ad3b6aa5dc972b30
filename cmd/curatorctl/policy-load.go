package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// policyLoadCmd represents the policy load command
var policyLoadCmd = &cobra.Command{
	Use:   "load <principal> <file>",
	Short: "Load a policy file",
	Long: `Load a policy file.

Bindings in the policy are applied on behalf of the given principal, which
must hold the operator role. A !bind that would overwrite an existing
strategy fails unless it carries force: true.

Example:
  curatorctl policy load ops@curator ./policy/production.yml`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		principal := args[0]
		filename := args[1]

		loader, err := newPolicyLoader(principal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create loader: %v\n", err)
			os.Exit(1)
		}

		result, err := loader.LoadFromFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load policy: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Policy loaded: %d vaults created, %d grants, %d bindings, %d removals\n",
			len(result.CreatedVaults), result.Grants, result.Bindings, result.Removals)
	},
}

func init() {
	policyCmd.AddCommand(policyLoadCmd)
}
