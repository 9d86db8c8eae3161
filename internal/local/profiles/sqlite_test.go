package profiles

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/local/migrate"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	e, err := migrate.NewEngine(migrate.CurrentVersion, migrate.Baseline, migrate.Steps, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background(), db))
	return db
}

func sampleProfile(id string) *models.Profile {
	return &models.Profile{
		ID:                   id,
		Name:                 "Alex",
		Contact:              "alex@uni.example",
		University:           "TU Wien",
		HomeTown:             "Graz",
		Residency:            "Haus Panorama",
		PictureRef:           "pics/alex.jpg",
		PriceMin:             300,
		PriceMax:             600,
		SizeMin:              12,
		SizeMax:              30,
		PreferredTags:        []string{"quiet", "furnished"},
		BookmarkedListingIDs: []string{"l1", "l2"},
		BlockedUserIDs:       []string{"u9"},
		BlockedNames:         map[string]string{"u9": "Sam"},
		DarkMode:             models.DarkModeOn,
	}
}

func TestReplaceAndGet_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	want := sampleProfile("u1")
	require.NoError(t, r.Replace(ctx, want))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGet_EmptyCacheIsNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestReplace_EnforcesSingleRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleProfile("u1")))
	second := sampleProfile("u2")
	second.BlockedNames = nil
	second.BlockedUserIDs = nil
	require.NoError(t, r.Replace(ctx, second))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&n))
	assert.Equal(t, 1, n)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)

	// blocked-name cache belongs to the replaced user and must be gone
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM blocked_names`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestGetByID_RejectsOtherUser(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleProfile("u1")))

	got, err := r.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = r.GetByID(ctx, "u2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClear_RemovesProfileAndNames(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleProfile("u1")))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Get(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = r.BlockedName(ctx, "u9")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBlockedName_UpsertAndLookup(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleProfile("u1")))

	require.NoError(t, r.PutBlockedName(ctx, "u5", "Kim"))
	require.NoError(t, r.PutBlockedName(ctx, "u5", "Kim L."))

	name, err := r.BlockedName(ctx, "u5")
	require.NoError(t, err)
	assert.Equal(t, "Kim L.", name)

	_, err = r.BlockedName(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGet_ProfileWithoutOptionalFields(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	minimal := &models.Profile{ID: "u1", Name: "Alex"}
	require.NoError(t, r.Replace(ctx, minimal))

	got, err := r.Get(ctx)
	require.NoError(t, err)

	want := minimal.Clone()
	want.DarkMode = models.DarkModeSystem // zero value normalizes on write
	assert.Equal(t, want, got)
	assert.Nil(t, got.PreferredTags)
	assert.Nil(t, got.BookmarkedListingIDs)
}
