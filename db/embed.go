// Package db embeds the SQL migrations so a curatorctl binary can
// migrate a database without shipping loose files.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
