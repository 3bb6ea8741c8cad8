package database

import (
	"database/sql"
	"fmt"
	"os"
)

const defaultSchemaPath = "docs/schema.sql"

// Migrate applies the schema from docs/schema.sql. All statements
// use IF NOT EXISTS, so running it on every boot is safe.
func Migrate(db *sql.DB) error {
	return MigrateFile(db, defaultSchemaPath)
}

// MigrateFile applies the schema at the given path. Tests use this
// with a relative path into docs/.
func MigrateFile(db *sql.DB, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
