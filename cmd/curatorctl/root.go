package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "curatorctl",
	Short: "Control the curation service",
	Long: `curatorctl manages the curation service: the server, the database
schema, role grants, and curation policy files.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
