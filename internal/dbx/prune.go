package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Rows per INSERT while staging the keep set. SQLite caps the number of
// host parameters per statement, so the ids go in batches well under it.
const pruneBatch = 500

// PruneExcept deletes every row of table whose id is not listed in keep.
// The keep set is staged in a temporary table inside one transaction, so
// snapshots of any size stay within SQLite's host-parameter limit. The
// table name must come from a trusted constant, never from input.
func PruneExcept(ctx context.Context, db *sql.DB, table string, keep []string) error {
	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE keep_ids (id TEXT PRIMARY KEY)`); err != nil {
			return fmt.Errorf("staging keep set: %w", err)
		}

		for start := 0; start < len(keep); start += pruneBatch {
			end := start + pruneBatch
			if end > len(keep) {
				end = len(keep)
			}
			batch := keep[start:end]

			placeholders := strings.Repeat("(?),", len(batch)-1) + "(?)"
			args := make([]any, len(batch))
			for i, id := range batch {
				args[i] = id
			}
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO keep_ids (id) VALUES `+placeholders, args...); err != nil {
				return fmt.Errorf("staging keep set: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id NOT IN (SELECT id FROM keep_ids)`); err != nil {
			return fmt.Errorf("pruning %s: %w", table, err)
		}

		// Drop explicitly so the next prune on this connection can stage again.
		if _, err := tx.ExecContext(ctx, `DROP TABLE keep_ids`); err != nil {
			return fmt.Errorf("dropping keep set: %w", err)
		}
		return nil
	})
}
