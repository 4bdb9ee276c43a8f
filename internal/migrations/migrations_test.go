package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAllAndIsIdempotent(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Run(db))
	version, err := CurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, AllMigrations[len(AllMigrations)-1].Version, version)

	require.NoError(t, Run(db))
	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, len(AllMigrations), applied)

	_, err = db.Exec("INSERT INTO activity (timestamp, action, target, ok) VALUES ('2026-01-01 00:00:00', 'create_tag', 'red', 1)")
	assert.NoError(t, err)
}

func TestRun_ResumesFromRecordedVersion(t *testing.T) {
	db := openDB(t)

	require.NoError(t, Run(db))
	_, err := db.Exec("DROP INDEX idx_activity_target")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM schema_migrations WHERE version = 2")
	require.NoError(t, err)

	require.NoError(t, Run(db))

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_activity_target'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "idx_activity_target", name)
}

func TestVersionsIncrease(t *testing.T) {
	for i := 1; i < len(AllMigrations); i++ {
		assert.Greater(t, AllMigrations[i].Version, AllMigrations[i-1].Version)
	}
}
