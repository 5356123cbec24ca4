// Package migrations embeds the goose SQL migrations: the schema, the
// destination/archetype relevance seed and the cross-table username claims. cmd/api applies them when
// AUTO_MIGRATE is set and the repo integration tests apply them in TestMain.
package migrations

import "embed"

// FS holds every *.sql migration, compiled into the binary.
//
//go:embed *.sql
var FS embed.FS
