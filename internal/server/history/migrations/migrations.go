// Package migrations embeds the goose SQL migrations for the transfer
// history schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
