package migrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/dbx"
	"github.com/unistay/unistay/internal/logging"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedVersion(t *testing.T, db *sql.DB, v int) {
	t.Helper()
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, v)
	require.NoError(t, err)
}

func readVersion(t *testing.T, db *sql.DB) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM meta WHERE key='schema_version'`).Scan(&v))
	return v
}

func noopApply(context.Context, dbx.DBTX) error { return nil }

// fakeSteps returns steps 1→2 … 5→6 that append their From version to the
// applied slice.
func fakeSteps(applied *[]int) []Step {
	var steps []Step
	for v := 1; v < 6; v++ {
		from := v
		steps = append(steps, Step{
			From: from, To: from + 1,
			Name: "fake",
			Apply: func(ctx context.Context, tx dbx.DBTX) error {
				*applied = append(*applied, from)
				return nil
			},
		})
	}
	return steps
}

func TestEngine_AppliesStepsInOrderExactlyOnce(t *testing.T) {
	db := openDB(t)
	seedVersion(t, db, 1)

	var applied []int
	e, err := NewEngine(6, func(context.Context, dbx.DBTX) error {
		t.Fatal("baseline must not run on an installed database")
		return nil
	}, fakeSteps(&applied), logging.Nop())
	require.NoError(t, err)

	require.NoError(t, e.Run(context.Background(), db))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, applied)
	assert.Equal(t, "6", readVersion(t, db))

	// a second run is a no-op
	require.NoError(t, e.Run(context.Background(), db))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, applied)
}

func TestEngine_FreshInstallSkipsStepsAndCreatesCurrent(t *testing.T) {
	db := openDB(t)

	var applied []int
	var baselined bool
	e, err := NewEngine(6, func(ctx context.Context, tx dbx.DBTX) error {
		baselined = true
		_, err := tx.ExecContext(ctx, `CREATE TABLE current_schema (x INTEGER)`)
		return err
	}, fakeSteps(&applied), logging.Nop())
	require.NoError(t, err)

	require.NoError(t, e.Run(context.Background(), db))
	assert.True(t, baselined)
	assert.Empty(t, applied)
	assert.Equal(t, "6", readVersion(t, db))
}

func TestEngine_MissingIntermediateStepIsFatal(t *testing.T) {
	db := openDB(t)
	seedVersion(t, db, 1)

	// 1→2 and 3→4 exist, 2→3 missing
	steps := []Step{
		{From: 1, To: 2, Name: "a", Apply: noopApply},
		{From: 3, To: 4, Name: "b", Apply: noopApply},
	}
	e, err := NewEngine(4, Baseline, steps, logging.Nop())
	require.NoError(t, err)

	err = e.Run(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMigrationFailed)
	// the applied 1→2 step committed; the version must reflect it
	assert.Equal(t, "2", readVersion(t, db))
}

func TestEngine_FailedStepRollsBackAndAborts(t *testing.T) {
	db := openDB(t)
	seedVersion(t, db, 1)

	steps := []Step{
		{From: 1, To: 2, Name: "boom", Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return errors.New("broken")
		}},
	}
	e, err := NewEngine(2, Baseline, steps, logging.Nop())
	require.NoError(t, err)

	err = e.Run(context.Background(), db)
	assert.ErrorIs(t, err, common.ErrMigrationFailed)
	assert.Equal(t, "1", readVersion(t, db), "version bump must roll back with the step")
}

func TestEngine_NewerThanExpectedIsFatal(t *testing.T) {
	db := openDB(t)
	seedVersion(t, db, 9)

	e, err := NewEngine(6, Baseline, nil, logging.Nop())
	require.NoError(t, err)
	assert.ErrorIs(t, e.Run(context.Background(), db), common.ErrMigrationFailed)
}

func TestNewEngine_RejectsMalformedSteps(t *testing.T) {
	_, err := NewEngine(3, Baseline, []Step{{From: 1, To: 3, Name: "skip", Apply: noopApply}}, logging.Nop())
	assert.ErrorIs(t, err, common.ErrMigrationFailed)

	_, err = NewEngine(3, Baseline, []Step{
		{From: 1, To: 2, Name: "a", Apply: noopApply},
		{From: 1, To: 2, Name: "b", Apply: noopApply},
	}, logging.Nop())
	assert.ErrorIs(t, err, common.ErrMigrationFailed)
}
