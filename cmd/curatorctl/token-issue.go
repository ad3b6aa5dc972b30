package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/server/middleware"
)

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "token-issue <principal>",
	Short: "Issue an API token for a principal",
	Long: `Issue an API token for a principal.

The token is signed with CURATOR_TOKEN_SIGNING_KEY and is valid for the
configured token TTL. The principal is not checked against the role
store; an unknown principal gets a token that authenticates but cannot
mutate anything.

Example:
  curatorctl token-issue ops@curator`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		principal := args[0]

		signingKeyB64, ok := os.LookupEnv("CURATOR_TOKEN_SIGNING_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "CURATOR_TOKEN_SIGNING_KEY environment variable is required")
			os.Exit(1)
		}

		signingKey, err := base64.StdEncoding.DecodeString(signingKeyB64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad CURATOR_TOKEN_SIGNING_KEY: %v\n", err)
			os.Exit(1)
		}

		auth := middleware.NewTokenAuthenticator(signingKey)
		token, err := auth.IssueToken(principal, config.Get().TokenValidity())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenIssueCmd)
}
