package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/dbx"
	"github.com/unistay/unistay/internal/local/codec"
	"github.com/unistay/unistay/internal/models"
)

// SQLiteRepository implements Repository on the local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const reviewColumns = `id, owner_id, created_at, residency, grade, body,
	media_refs, upvoter_ids, downvoter_ids, anonymous`

const upsertReview = `INSERT INTO reviews (` + reviewColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		owner_id = excluded.owner_id,
		created_at = excluded.created_at,
		residency = excluded.residency,
		grade = excluded.grade,
		body = excluded.body,
		media_refs = excluded.media_refs,
		upvoter_ids = excluded.upvoter_ids,
		downvoter_ids = excluded.downvoter_ids,
		anonymous = excluded.anonymous`

func upsertArgs(rv *models.Review) []any {
	return []any{
		rv.ID, rv.OwnerID, codec.EncodeTime(rv.CreatedAt), rv.Residency, rv.Grade, rv.Body,
		codec.JoinList(rv.MediaRefs), codec.JoinList(rv.Upvoters), codec.JoinList(rv.Downvoters),
		rv.Anonymous,
	}
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Review, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	rv, err := scanReview(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading review: %w", err)
	}
	return rv, nil
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
}

func (r *SQLiteRepository) ByOwner(ctx context.Context, ownerID string) ([]models.Review, error) {
	return r.query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting reviews: %w", err)
	}
	defer rows.Close()

	var result []models.Review
	for rows.Next() {
		rv, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rv *models.Review) error {
	if _, err := r.db.ExecContext(ctx, upsertReview, upsertArgs(rv)...); err != nil {
		return fmt.Errorf("upserting review: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) PutAll(ctx context.Context, rvs []models.Review) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range rvs {
			if _, err := tx.ExecContext(ctx, upsertReview, upsertArgs(&rvs[i])...); err != nil {
				return fmt.Errorf("upserting review %s: %w", rvs[i].ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllExcept(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		return r.Clear(ctx)
	}
	return dbx.PruneExcept(ctx, r.db, "reviews", keep)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("clearing reviews: %w", err)
	}
	return nil
}

func scanReview(scan func(dest ...any) error) (*models.Review, error) {
	var rv models.Review
	var createdAt int64
	var mediaRefs, upvoters, downvoters string
	err := scan(&rv.ID, &rv.OwnerID, &createdAt, &rv.Residency, &rv.Grade, &rv.Body,
		&mediaRefs, &upvoters, &downvoters, &rv.Anonymous)
	if err != nil {
		return nil, err
	}
	rv.CreatedAt = codec.DecodeTime(createdAt)
	rv.MediaRefs = codec.SplitList(mediaRefs)
	rv.Upvoters = codec.SplitList(upvoters)
	rv.Downvoters = codec.SplitList(downvoters)
	return &rv, nil
}
