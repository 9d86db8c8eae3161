package listings

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

const listingColumns = `id, owner_id, created_at, title, address, description,
	rate, area, available_from, media_refs, status, lat, lng`

const upsertListing = `INSERT INTO listings (` + listingColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		owner_id = excluded.owner_id,
		created_at = excluded.created_at,
		title = excluded.title,
		address = excluded.address,
		description = excluded.description,
		rate = excluded.rate,
		area = excluded.area,
		available_from = excluded.available_from,
		media_refs = excluded.media_refs,
		status = excluded.status,
		lat = excluded.lat,
		lng = excluded.lng`

func upsertArgs(l *models.Listing) []any {
	return []any{
		l.ID, l.OwnerID, codec.EncodeTime(l.CreatedAt), l.Title, l.Address, l.Description,
		l.Rate, l.Area, codec.EncodeTime(l.AvailableFrom),
		codec.JoinList(l.MediaRefs), l.Status.String(), l.Location.Lat, l.Location.Lng,
	}
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`)
}

func (r *SQLiteRepository) ByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting listings: %w", err)
	}
	defer rows.Close()

	var result []models.Listing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, l *models.Listing) error {
	if _, err := r.db.ExecContext(ctx, upsertListing, upsertArgs(l)...); err != nil {
		return fmt.Errorf("upserting listing: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) PutAll(ctx context.Context, ls []models.Listing) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range ls {
			if _, err := tx.ExecContext(ctx, upsertListing, upsertArgs(&ls[i])...); err != nil {
				return fmt.Errorf("upserting listing %s: %w", ls[i].ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllExcept(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		return r.Clear(ctx)
	}
	return dbx.PruneExcept(ctx, r.db, "listings", keep)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("clearing listings: %w", err)
	}
	return nil
}

func scanListing(scan func(dest ...any) error) (*models.Listing, error) {
	var l models.Listing
	var createdAt, availableFrom int64
	var mediaRefs, status string
	err := scan(&l.ID, &l.OwnerID, &createdAt, &l.Title, &l.Address, &l.Description,
		&l.Rate, &l.Area, &availableFrom, &mediaRefs, &status, &l.Location.Lat, &l.Location.Lng)
	if err != nil {
		return nil, err
	}
	l.CreatedAt = codec.DecodeTime(createdAt)
	l.AvailableFrom = codec.DecodeTime(availableFrom)
	l.MediaRefs = codec.SplitList(mediaRefs)
	l.Status = models.ParseListingStatus(status)
	return &l, nil
}
