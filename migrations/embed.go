// Package migrations embeds the goose SQL migration files so the server can
// apply them at startup and integration tests can run them against a test DB.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
