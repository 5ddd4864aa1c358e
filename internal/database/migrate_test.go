package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsCreatesSchema(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dbPath, migrations))
	// applying again is a no-op, not an error
	require.NoError(t, RunMigrations(dbPath, migrations))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"sales", "sale_lines"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		require.Equal(t, table, name)
	}
}

func TestRunMigrationsWithDBAppliesToOpenConnection(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	db, err := Open(dbPath)
	require.NoError(t, err)
	// the migrate driver takes ownership of db and closes it
	require.NoError(t, RunMigrationsWithDB(db, migrations))

	check, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = check.Close() })

	var count int
	require.NoError(t, check.QueryRow(`SELECT COUNT(*) FROM sales`).Scan(&count))
	require.Zero(t, count)
}
