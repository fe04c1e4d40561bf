package postgres

import "embed"

// MigrationsDir is the directory inside Migrations that holds the goose
// SQL files.
const MigrationsDir = "migrations"

// Migrations holds the schema migrations, embedded so the binary can
// migrate a database without the source tree.
//
//go:embed migrations/*.sql
var Migrations embed.FS
