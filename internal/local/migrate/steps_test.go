package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unistay/unistay/internal/logging"
)

func TestSteps_UpgradeFromV1(t *testing.T) {
	db := openDB(t)
	seedVersion(t, db, 1)

	// schema as it shipped at version 1: profiles without
	// residency/dark_mode, listings without status/geo, no reviews or
	// blocked_names, plus the legacy search_history table
	stmts := []string{
		`CREATE TABLE profiles (
			id TEXT PRIMARY KEY, name TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '', university TEXT NOT NULL DEFAULT '',
			home_town TEXT NOT NULL DEFAULT '', picture_ref TEXT NOT NULL DEFAULT '',
			price_min INTEGER NOT NULL DEFAULT 0, price_max INTEGER NOT NULL DEFAULT 0,
			size_min REAL NOT NULL DEFAULT 0, size_max REAL NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '', bookmarked_ids TEXT NOT NULL DEFAULT '',
			blocked_ids TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE listings (
			id TEXT PRIMARY KEY, owner_id TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0, title TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '', description TEXT NOT NULL DEFAULT '',
			rate REAL NOT NULL DEFAULT 0, area REAL NOT NULL DEFAULT 0,
			available_from INTEGER NOT NULL DEFAULT 0, media_refs TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE search_history (query TEXT, searched_at INTEGER)`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	// stale cached listing from the pre-status era
	_, err := db.Exec(`INSERT INTO listings (id, owner_id, title) VALUES ('l-old', 'u1', 'Old room')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO profiles (id, name) VALUES ('u1', 'Alex')`)
	require.NoError(t, err)

	e, err := NewEngine(CurrentVersion, Baseline, Steps, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background(), db))

	assert.Equal(t, "6", readVersion(t, db))

	// profiles gained the new columns, existing row preserved
	var darkMode string
	require.NoError(t, db.QueryRow(`SELECT dark_mode FROM profiles WHERE id='u1'`).Scan(&darkMode))
	assert.Equal(t, "system", darkMode)

	// destructive 4→5 emptied the listing cache
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&n))
	assert.Equal(t, 0, n)

	// new tables exist
	_, err = db.Exec(`INSERT INTO reviews (id, owner_id) VALUES ('r1', 'u1')`)
	assert.NoError(t, err)
	_, err = db.Exec(`INSERT INTO blocked_names (user_id, name) VALUES ('u2', 'Sam')`)
	assert.NoError(t, err)

	// legacy table dropped
	var cnt int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='search_history'`).Scan(&cnt)
	require.NoError(t, err)
	assert.Equal(t, 0, cnt)
}

func TestBaseline_CreatesAllTables(t *testing.T) {
	db := openDB(t)

	e, err := NewEngine(CurrentVersion, Baseline, Steps, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background(), db))

	for _, table := range []string{"profiles", "blocked_names", "listings", "reviews", "meta"} {
		var cnt int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&cnt)
		require.NoError(t, err)
		assert.Equal(t, 1, cnt, "table %s must exist", table)
	}
}
