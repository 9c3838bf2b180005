// migrations/embed.go
package migrations

import "embed"

// FS holds the SQL migrations applied by database.Migrator.
//
//go:embed *.sql
var FS embed.FS
