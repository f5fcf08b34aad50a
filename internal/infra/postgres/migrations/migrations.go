package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry applied by the migrate CLI command and the
// integration tests.
var Migrations = migrate.NewMigrations()
