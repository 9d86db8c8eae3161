package migrate

import (
	"context"

	"github.com/unistay/unistay/internal/dbx"
)

// CurrentVersion is the schema version this build expects.
const CurrentVersion = 6

// Baseline creates the current (v6) schema directly. Used for fresh
// installs only; upgrades go through Steps.
func Baseline(ctx context.Context, tx dbx.DBTX) error {
	stmts := []string{
		`CREATE TABLE profiles (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			contact         TEXT NOT NULL DEFAULT '',
			university      TEXT NOT NULL DEFAULT '',
			home_town       TEXT NOT NULL DEFAULT '',
			residency       TEXT NOT NULL DEFAULT '',
			picture_ref     TEXT NOT NULL DEFAULT '',
			price_min       INTEGER NOT NULL DEFAULT 0,
			price_max       INTEGER NOT NULL DEFAULT 0,
			size_min        REAL NOT NULL DEFAULT 0,
			size_max        REAL NOT NULL DEFAULT 0,
			tags            TEXT NOT NULL DEFAULT '',
			bookmarked_ids  TEXT NOT NULL DEFAULT '',
			blocked_ids     TEXT NOT NULL DEFAULT '',
			dark_mode       TEXT NOT NULL DEFAULT 'system'
		)`,
		`CREATE TABLE blocked_names (
			user_id TEXT PRIMARY KEY,
			name    TEXT NOT NULL
		)`,
		`CREATE TABLE listings (
			id             TEXT PRIMARY KEY,
			owner_id       TEXT NOT NULL,
			created_at     INTEGER NOT NULL DEFAULT 0,
			title          TEXT NOT NULL DEFAULT '',
			address        TEXT NOT NULL DEFAULT '',
			description    TEXT NOT NULL DEFAULT '',
			rate           REAL NOT NULL DEFAULT 0,
			area           REAL NOT NULL DEFAULT 0,
			available_from INTEGER NOT NULL DEFAULT 0,
			media_refs     TEXT NOT NULL DEFAULT '',
			status         TEXT NOT NULL DEFAULT 'posted',
			lat            REAL NOT NULL DEFAULT 0,
			lng            REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX idx_listings_owner ON listings(owner_id)`,
		`CREATE TABLE reviews (
			id            TEXT PRIMARY KEY,
			owner_id      TEXT NOT NULL,
			created_at    INTEGER NOT NULL DEFAULT 0,
			residency     TEXT NOT NULL DEFAULT '',
			grade         REAL NOT NULL DEFAULT 0,
			body          TEXT NOT NULL DEFAULT '',
			media_refs    TEXT NOT NULL DEFAULT '',
			upvoter_ids   TEXT NOT NULL DEFAULT '',
			downvoter_ids TEXT NOT NULL DEFAULT '',
			anonymous     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX idx_reviews_owner ON reviews(owner_id)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Steps is the ordered upgrade history. Steps must never be reordered or
// removed once shipped; devices in the field may sit at any version.
var Steps = []Step{
	{
		From: 1, To: 2,
		Name: "profiles: add residency and dark_mode",
		Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return execAll(ctx, tx,
				`ALTER TABLE profiles ADD COLUMN residency TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE profiles ADD COLUMN dark_mode TEXT NOT NULL DEFAULT 'system'`,
			)
		},
	},
	{
		From: 2, To: 3,
		Name: "create reviews",
		Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return execAll(ctx, tx,
				`CREATE TABLE reviews (
					id            TEXT PRIMARY KEY,
					owner_id      TEXT NOT NULL,
					created_at    INTEGER NOT NULL DEFAULT 0,
					residency     TEXT NOT NULL DEFAULT '',
					grade         REAL NOT NULL DEFAULT 0,
					body          TEXT NOT NULL DEFAULT '',
					media_refs    TEXT NOT NULL DEFAULT '',
					upvoter_ids   TEXT NOT NULL DEFAULT '',
					downvoter_ids TEXT NOT NULL DEFAULT '',
					anonymous     INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_reviews_owner ON reviews(owner_id)`,
			)
		},
	},
	{
		From: 3, To: 4,
		Name: "create blocked_names cache",
		Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return execAll(ctx, tx,
				`CREATE TABLE blocked_names (
					user_id TEXT PRIMARY KEY,
					name    TEXT NOT NULL
				)`,
			)
		},
	},
	{
		// Destructive: clears every cached listing. Rows written before
		// the status/geo columns existed cannot be trusted, so the cache
		// is emptied and refilled by the next successful sync pass.
		From: 4, To: 5,
		Name:        "listings: add status and geo columns, clear stale cache",
		Destructive: true,
		Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return execAll(ctx, tx,
				`ALTER TABLE listings ADD COLUMN status TEXT NOT NULL DEFAULT 'posted'`,
				`ALTER TABLE listings ADD COLUMN lat REAL NOT NULL DEFAULT 0`,
				`ALTER TABLE listings ADD COLUMN lng REAL NOT NULL DEFAULT 0`,
				`DELETE FROM listings`,
			)
		},
	},
	{
		// Destructive: drops the legacy search_history table. Search
		// history moved server-side; local rows are discarded for good.
		From: 5, To: 6,
		Name:        "drop legacy search_history",
		Destructive: true,
		Apply: func(ctx context.Context, tx dbx.DBTX) error {
			return execAll(ctx, tx, `DROP TABLE IF EXISTS search_history`)
		},
	},
}

func execAll(ctx context.Context, tx dbx.DBTX, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
