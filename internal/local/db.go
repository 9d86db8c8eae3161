// Package local wires the on-device SQLite store: it opens the database,
// brings the schema to the current version and hands out the per-family
// repositories.
package local

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/unistay/unistay/internal/local/listings"
	"github.com/unistay/unistay/internal/local/meta"
	"github.com/unistay/unistay/internal/local/migrate"
	"github.com/unistay/unistay/internal/local/profiles"
	"github.com/unistay/unistay/internal/local/reviews"
	"github.com/unistay/unistay/internal/logging"
)

// Store bundles the open database handle and the repositories bound to it.
type Store struct {
	DB       *sql.DB
	Meta     meta.Repository
	Profiles profiles.Repository
	Listings listings.Repository
	Reviews  reviews.Repository
}

// Open opens (or creates) the local database at dsn and runs migrations.
// A migration failure aborts initialization.
//
// The connection pool is capped at a single connection: SQLite allows one
// writer at a time, and funnelling every statement through one connection
// serializes writes while in-flight reads still interleave at the SQL
// level.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configuring local store: %w", err)
	}

	engine, err := migrate.NewEngine(migrate.CurrentVersion, migrate.Baseline, migrate.Steps, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := engine.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:       db,
		Meta:     meta.NewSQLiteRepository(db),
		Profiles: profiles.NewSQLiteRepository(db),
		Listings: listings.NewSQLiteRepository(db),
		Reviews:  reviews.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
