// Package config provides configuration management for the curator.
//
// This package handles loading and validating curator server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - CURATOR_TOKEN_SIGNING_KEY: HMAC key for bearer tokens
//   - CURATOR_ALLOW_SILENT_REBIND: restore the legacy unguarded overwrite
//   - DATABASE_URL: Database connection
//   - AUDIT_DATABASE_URL: Audit persistence (optional)
//   - PORT: Server listen port
package config
