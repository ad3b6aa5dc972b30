// Command changelog parses and checks the repository's CHANGELOG.md,
// which follows the Keep a Changelog format. Release tooling uses it to
// pull the notes for a tagged version.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Keep a Changelog parser and checker",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
