// Package migrations versions the schema of the local activity database.
package migrations

import (
	"database/sql"
	"fmt"
)

// Migration is one forward schema step
type Migration struct {
	Version int
	Name    string
	Up      string
}

// AllMigrations is applied in order; versions must be increasing
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Create activity table",
		Up: `
			CREATE TABLE IF NOT EXISTS activity (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp DATETIME NOT NULL,
				action TEXT NOT NULL,
				target TEXT NOT NULL,
				payload TEXT,
				ok INTEGER NOT NULL,
				error TEXT
			);

			CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
			CREATE INDEX IF NOT EXISTS idx_activity_action ON activity(action);
		`,
	},
	{
		Version: 2,
		Name:    "Index activity by target",
		Up: `
			-- per-SKU lookups from the product detail pane
			CREATE INDEX IF NOT EXISTS idx_activity_target ON activity(target, id DESC);
		`,
	},
}

// Run applies every migration newer than the recorded version
func Run(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= current {
			continue
		}
		if err := apply(db, migration); err != nil {
			return err
		}
	}

	return nil
}

// apply runs one migration and records it in the same transaction
func apply(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version,
		migration.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	return tx.Commit()
}

// CurrentVersion returns the highest applied migration, 0 for a new database
func CurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
