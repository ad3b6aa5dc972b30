// Package main provides curatorctl, the control CLI for the curation
// service.
//
// The curation service keeps the adapter-to-vault strategy map for a set
// of yield vaults. Every adapter is bound to at most one vault at a time,
// and rebinding is an explicit, forced operation instead of a silent
// overwrite.
//
// # Quick Start
//
//	# Generate a token signing key
//	curatorctl token-key generate > token_key
//	export CURATOR_TOKEN_SIGNING_KEY=$(cat token_key)
//
//	# Run database migrations
//	curatorctl db migrate
//
//	# Bootstrap the admin and operator principals
//	curatorctl init root@curator ops@curator
//
//	# Start the server
//	curatorctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - CURATOR_TOKEN_SIGNING_KEY: Base64-encoded HMAC key for API tokens
//   - CURATOR_ADMIN: Admin principal the registry is constructed with
//   - CURATOR_ALLOW_SILENT_REBIND: Restore the historical unguarded rebind
//   - CURATOR_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
//
// For more information, see https://github.com/finbound/curator
package main
