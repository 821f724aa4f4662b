// Package migrations contains embedded SQL migrations for the content store.
package migrations

import "embed"

// FS contains the content store schema.
//
//go:embed *.sql
var FS embed.FS
