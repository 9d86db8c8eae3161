package meta

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/unistay/unistay/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestSetGetDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Get(ctx, "last_sync_listings")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.Set(ctx, "last_sync_listings", "2026-03-01T12:00:00Z"))
	v, err := r.Get(ctx, "last_sync_listings")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T12:00:00Z", v)

	// upsert overwrites
	require.NoError(t, r.Set(ctx, "last_sync_listings", "2026-03-02T08:00:00Z"))
	v, err = r.Get(ctx, "last_sync_listings")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02T08:00:00Z", v)

	require.NoError(t, r.Delete(ctx, "last_sync_listings"))
	_, err = r.Get(ctx, "last_sync_listings")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, r.Delete(ctx, "last_sync_listings"))
}
