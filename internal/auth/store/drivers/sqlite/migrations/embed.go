// Package migrations embeds the SQLite schema migration files so they can be
// applied from the compiled binary without shipping loose SQL alongside it.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
