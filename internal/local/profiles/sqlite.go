package profiles

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
// Replace and Clear span the profiles and blocked_names tables and run in
// a transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const profileColumns = `id, name, contact, university, home_town, residency, picture_ref,
	price_min, price_max, size_min, size_max, tags, bookmarked_ids, blocked_ids, dark_mode`

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles LIMIT 1`)
	p, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadBlockedNames(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p.ID != id {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, p *models.Profile) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
			return fmt.Errorf("clearing profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocked_names`); err != nil {
			return fmt.Errorf("clearing blocked names: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO profiles (`+profileColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Contact, p.University, p.HomeTown, p.Residency, p.PictureRef,
			p.PriceMin, p.PriceMax, p.SizeMin, p.SizeMax,
			codec.JoinList(p.PreferredTags),
			codec.JoinList(p.BookmarkedListingIDs),
			codec.JoinList(p.BlockedUserIDs),
			string(models.ParseDarkMode(string(p.DarkMode))))
		if err != nil {
			return fmt.Errorf("inserting profile: %w", err)
		}
		for userID, name := range p.BlockedNames {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO blocked_names (user_id, name) VALUES (?, ?)`, userID, name); err != nil {
				return fmt.Errorf("caching blocked name: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles`); err != nil {
			return fmt.Errorf("clearing profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocked_names`); err != nil {
			return fmt.Errorf("clearing blocked names: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) BlockedName(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM blocked_names WHERE user_id = ?`, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading blocked name: %w", err)
	}
	return name, nil
}

func (r *SQLiteRepository) PutBlockedName(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blocked_names (user_id, name) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET name = excluded.name`, userID, name)
	if err != nil {
		return fmt.Errorf("caching blocked name: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) loadBlockedNames(ctx context.Context, p *models.Profile) error {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, name FROM blocked_names`)
	if err != nil {
		return fmt.Errorf("reading blocked names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var userID, name string
		if err := rows.Scan(&userID, &name); err != nil {
			return err
		}
		names[userID] = name
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(names) > 0 {
		p.BlockedNames = names
	}
	return nil
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	var tags, bookmarks, blocked, darkMode string
	err := row.Scan(&p.ID, &p.Name, &p.Contact, &p.University, &p.HomeTown, &p.Residency,
		&p.PictureRef, &p.PriceMin, &p.PriceMax, &p.SizeMin, &p.SizeMax,
		&tags, &bookmarks, &blocked, &darkMode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.PreferredTags = codec.SplitList(tags)
	p.BookmarkedListingIDs = codec.SplitList(bookmarks)
	p.BlockedUserIDs = codec.SplitList(blocked)
	p.DarkMode = models.ParseDarkMode(darkMode)
	return &p, nil
}
