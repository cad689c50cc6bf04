// Package migrations embeds the SQL schema files applied by the postgres
// storage through golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
