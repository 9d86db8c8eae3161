// Package migrate implements the ordered, forward-only schema migration
// engine for the local store. The installed schema version is tracked in
// the meta table; steps transform version N to N+1 and each runs in its
// own transaction together with the version bump.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/dbx"
	"github.com/unistay/unistay/internal/logging"
)

// versionKey is the meta-table key holding the installed schema version.
const versionKey = "schema_version"

// Step is a single v→v+1 schema transformation.
type Step struct {
	From int
	To   int
	Name string

	// Destructive marks steps that discard cached data. The data-loss
	// scope belongs in the step definition, next to the SQL that causes
	// it. Destructive steps are logged at Warn when applied.
	Destructive bool

	Apply func(ctx context.Context, tx dbx.DBTX) error
}

// Engine applies steps until the installed version reaches target.
//
// A fresh database (no recorded version) skips all steps: baseline creates
// the current schema directly and the target version is recorded. An
// installed version with no step leading out of it is a fatal gap.
type Engine struct {
	target   int
	baseline func(ctx context.Context, tx dbx.DBTX) error
	steps    map[int]Step
	log      logging.Logger
}

func NewEngine(target int, baseline func(ctx context.Context, tx dbx.DBTX) error, steps []Step, log logging.Logger) (*Engine, error) {
	byFrom := make(map[int]Step, len(steps))
	for _, s := range steps {
		if s.To != s.From+1 {
			return nil, fmt.Errorf("%w: step %q must advance exactly one version (%d->%d)", common.ErrMigrationFailed, s.Name, s.From, s.To)
		}
		if _, dup := byFrom[s.From]; dup {
			return nil, fmt.Errorf("%w: duplicate step from version %d", common.ErrMigrationFailed, s.From)
		}
		byFrom[s.From] = s
	}
	return &Engine{target: target, baseline: baseline, steps: byFrom, log: log}, nil
}

// Run brings db to the target schema version. Any failure aborts store
// initialization; continuing with a mismatched schema risks silent data
// corruption.
func (e *Engine) Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("%w: creating meta table: %v", common.ErrMigrationFailed, err)
	}

	installed, fresh, err := e.installedVersion(ctx, db)
	if err != nil {
		return err
	}

	if fresh {
		e.log.Info(ctx, "fresh install, creating schema", "version", e.target)
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := e.baseline(ctx, tx); err != nil {
				return fmt.Errorf("%w: baseline schema: %v", common.ErrMigrationFailed, err)
			}
			return setVersion(ctx, tx, e.target)
		})
	}

	if installed > e.target {
		return fmt.Errorf("%w: installed schema version %d is newer than expected %d", common.ErrMigrationFailed, installed, e.target)
	}

	for v := installed; v < e.target; v++ {
		step, ok := e.steps[v]
		if !ok {
			return fmt.Errorf("%w: no migration from version %d", common.ErrMigrationFailed, v)
		}
		if step.Destructive {
			e.log.Warn(ctx, "applying destructive migration", "name", step.Name, "from", step.From, "to", step.To)
		} else {
			e.log.Info(ctx, "applying migration", "name", step.Name, "from", step.From, "to", step.To)
		}
		err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := step.Apply(ctx, tx); err != nil {
				return fmt.Errorf("%w: step %q: %v", common.ErrMigrationFailed, step.Name, err)
			}
			return setVersion(ctx, tx, step.To)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) installedVersion(ctx context.Context, db *sql.DB) (version int, fresh bool, err error) {
	var raw string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, versionKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: reading schema version: %v", common.ErrMigrationFailed, err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: malformed schema version %q", common.ErrMigrationFailed, raw)
	}
	return v, false, nil
}

func setVersion(ctx context.Context, tx dbx.DBTX, v int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		versionKey, strconv.Itoa(v))
	if err != nil {
		return fmt.Errorf("%w: recording schema version %d: %v", common.ErrMigrationFailed, v, err)
	}
	return nil
}
