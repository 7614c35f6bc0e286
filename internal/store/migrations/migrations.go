// Package migrations embeds the goose migration scripts that define the
// record store schema. The schema is fixed at initialization; there is no
// runtime DDL anywhere else.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
