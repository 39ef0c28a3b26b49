// Package migrations embeds the goose SQL migration files applied at
// startup when the relational backend is in use.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
