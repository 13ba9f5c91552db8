package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp applies every *.up.sql migration in filename order. The
// statements are idempotent, so re-running on an existing database is
// safe.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, ".up.sql")
}

// MigrateDown applies every *.down.sql migration in filename order.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, ".down.sql")
}

func runMigrations(db *sql.DB, suffix string) error {
	names, err := fs.Glob(migrationFS, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("list %s migrations: %w", suffix, err)
	}
	sort.Strings(names)
	for _, name := range names {
		script, readErr := migrationFS.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(script)); execErr != nil {
			return fmt.Errorf("run %s: %w", name, execErr)
		}
	}
	return nil
}
