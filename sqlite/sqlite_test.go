package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/diaclass/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("opens file database and creates schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache.db")
		db := sqlite.NewDB(path)

		require.NoError(t, db.Open())
		defer db.Close()

		assert.FileExists(t, path)
		assert.Equal(t, path, db.Path())
	})

	t.Run("reopening keeps existing schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache.db")
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		assert.NoError(t, db.Close())
	})

	t.Run("fails for unwritable location", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "missing", "dir", "cache.db"))

		assert.Error(t, db.Open())
	})

	t.Run("close without open is a no-op", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
