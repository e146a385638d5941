// ABOUTME: Embedded goose migrations for the SQLite backend.
// ABOUTME: Schema changes are numbered SQL files under migrations/.
package storage

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// initSchema applies any pending migrations.
func (d *DB) initSchema() error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("get migrations directory: %w", err)
	}
	goose.SetBaseFS(migrationsDir)
	goose.SetLogger(goose.NopLogger())

	if err := goose.Up(d.db.DB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// SchemaVersion returns the current goose migration version.
func (d *DB) SchemaVersion() (int64, error) {
	return goose.GetDBVersion(d.db.DB)
}
