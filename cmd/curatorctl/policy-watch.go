package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/policy"
)

// policyWatchCmd represents the policy watch command
var policyWatchCmd = &cobra.Command{
	Use:   "watch <principal> <file>",
	Short: "Watch a policy file and reload it on change",
	Long: `Watch a policy file and reload it whenever it is rewritten.

The file must exist when the watch starts. Each rewrite is parsed and
applied on behalf of the given principal.

Example:
  curatorctl policy watch ops@curator /run/curator/policy.yml`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		principal := args[0]
		filename := args[1]

		if err := watchPolicy(principal, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch policy: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	policyCmd.AddCommand(policyWatchCmd)
}

func watchPolicy(principal, filename string) error {
	loader, err := newPolicyLoader(principal)
	if err != nil {
		return err
	}

	watcher, err := policy.NewWatcher(loader, filename)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	watcher.OnReload = func(result *policy.LoadResult, err error) {
		stamp := time.Now().Format(time.RFC3339)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] Error loading policy: %v\n", stamp, err)
			return
		}
		fmt.Printf("[%s] Policy reloaded: %d vaults created, %d grants, %d bindings, %d removals\n",
			stamp, len(result.CreatedVaults), result.Grants, result.Bindings, result.Removals)
	}

	fmt.Printf("Watching %s for policy changes\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	stop := make(chan struct{})
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		close(stop)
	}()

	return watcher.Watch(stop)
}
