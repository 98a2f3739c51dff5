package db

import "embed"

// Migrations holds the schema of the accounts tables, applied by dbmigrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migrations"
