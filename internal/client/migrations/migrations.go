// Package migrations embeds the goose SQL migrations for the client's local
// database, including the bundled demo dataset.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
