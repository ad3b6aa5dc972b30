package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finbound/curator/pkg/audit"
	"github.com/finbound/curator/pkg/authz"
	"github.com/finbound/curator/pkg/config"
	"github.com/finbound/curator/pkg/db"
	"github.com/finbound/curator/pkg/registry"
	"github.com/finbound/curator/pkg/server"
	"github.com/finbound/curator/pkg/server/endpoints"
	"github.com/finbound/curator/pkg/server/middleware"
	gormstore "github.com/finbound/curator/pkg/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

func adminPrincipal() string {
	if admin := os.Getenv("CURATOR_ADMIN"); admin != "" {
		return admin
	}
	return "root@curator"
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the curation service server",
	Long: `Run the curation service server

To run the server requires the environment variables CURATOR_TOKEN_SIGNING_KEY
and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		signingKeyB64, ok := os.LookupEnv("CURATOR_TOKEN_SIGNING_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "CURATOR_TOKEN_SIGNING_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		signingKey, err := base64.StdEncoding.DecodeString(signingKeyB64)
		if err != nil {
			fmt.Println("Bad CURATOR_TOKEN_SIGNING_KEY:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Println("Invalid configuration:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		if cfg.AuditDatabaseURL != "" {
			auditStore, err := audit.NewStore(cfg.AuditDatabaseURL)
			if err != nil {
				fmt.Println("Unable to connect to audit DB:", err)
				os.Exit(1)
			}
			audit.DefaultStore = auditStore
		}

		bindingsStore := gormstore.NewBindingsStore(database)
		vaultsStore := gormstore.NewVaultsStore(database)
		authzStore := gormstore.NewAuthzStore(database)
		healthStore := gormstore.NewHealthStore(database)

		policy := authz.NewPolicy(authzStore)

		var opts []registry.Option
		if cfg.AllowSilentRebind {
			log.Println("WARNING: silent rebind compatibility mode is enabled")
			opts = append(opts, registry.WithSilentRebind())
		}
		reg := registry.New(adminPrincipal(), bindingsStore, policy, opts...)

		auth := middleware.NewTokenAuthenticator(signingKey)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(reg, bindingsStore, vaultsStore, authzStore, healthStore, cfg, auth, database, host, port)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
