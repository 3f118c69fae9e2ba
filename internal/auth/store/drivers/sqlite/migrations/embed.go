package migrations

import "embed"

// Migrations holds the schema for the sqlite credential store.
//
//go:embed *.sql
var Migrations embed.FS
