package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"store_revision",
		"activity_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	// Re-running must not reset the revision row.
	_, err := db.Exec(`UPDATE store_revision SET revision = 7 WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	var revision int64
	require.NoError(t, db.QueryRow(`SELECT revision FROM store_revision WHERE id = 1`).Scan(&revision))
	require.Equal(t, int64(7), revision)
}

// TestProjectsTable verifies the projects table constraints
func TestProjectsTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (project_id, project_name, bu, project_type) VALUES (?, ?, ?, ?)`,
		"PRJ-001", "Oncology Campaign", "Oncology", "Campaign")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (project_id, project_name) VALUES (?, ?)`,
		"PRJ-001", "Duplicate")
	require.Error(t, err, "should fail with duplicate project_id")
	require.True(t, isUniqueViolation(err))

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (project_id, project_name, content_status) VALUES (?, ?, ?)`,
		"PRJ-002", "Bad status", "Archived")
	require.Error(t, err, "should fail with invalid status")
	require.True(t, isCheckViolation(err))

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (project_id, project_name, gd_rework) VALUES (?, ?, ?)`,
		"PRJ-003", "Negative", -1)
	require.Error(t, err, "should fail with negative rework")
}
