package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newshub/pkg/domain"
)

// FeedRepository persists the feed catalog and its selection flags
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	Category  string    `db:"category"`
	Selected  bool      `db:"selected"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// LoadFeeds returns all stored feeds in insertion order
func (r *FeedRepository) LoadFeeds(ctx context.Context) ([]domain.FeedRecord, error) {
	var rows []feedSQL
	query := "SELECT id, name, url, category, selected, position, created_at FROM feeds ORDER BY position, created_at"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}

	res := make([]domain.FeedRecord, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.FeedRecord{
			Feed:      domain.Feed{ID: row.ID, Name: row.Name, URL: row.URL, Category: domain.Category(row.Category)},
			Selected:  row.Selected,
			CreatedAt: row.CreatedAt,
		})
	}
	return res, nil
}

// CreateFeed inserts a single feed
func (r *FeedRepository) CreateFeed(ctx context.Context, rec domain.FeedRecord) error {
	return r.CreateFeeds(ctx, []domain.FeedRecord{rec})
}

// CreateFeeds inserts feeds after the existing ones, in one transaction. Known ids are left unchanged.
func (r *FeedRepository) CreateFeeds(ctx context.Context, recs []domain.FeedRecord) error {
	if len(recs) == 0 {
		return nil
	}
	query := r.db.Rebind(`
		INSERT INTO feeds (id, name, url, category, selected, position, created_at)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM feeds), ?)
		ON CONFLICT(id) DO NOTHING
	`)

	err := withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			for _, rec := range recs {
				created := rec.CreatedAt
				if created.IsZero() {
					created = time.Now()
				}
				if _, err := tx.ExecContext(ctx, query, rec.ID, rec.Name, rec.URL, string(rec.Category),
					rec.Selected, created.UTC()); err != nil {
					return fmt.Errorf("insert feed %s: %w", rec.ID, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("create feeds: %w", err)
	}
	return nil
}

// SetSelected marks exactly the given feeds as selected. Ids without a stored feed are ignored.
func (r *FeedRepository) SetSelected(ctx context.Context, ids []string) error {
	err := withLockRetry(ctx, func() error {
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, "UPDATE feeds SET selected = FALSE WHERE selected = TRUE"); err != nil {
				return fmt.Errorf("reset selection: %w", err)
			}
			if len(ids) == 0 {
				return nil
			}
			query, args, err := sqlx.In("UPDATE feeds SET selected = TRUE WHERE id IN (?)", ids)
			if err != nil {
				return fmt.Errorf("build selection query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("apply selection: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("set selected: %w", err)
	}
	return nil
}
