package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newshub/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64      `db:"id"`
	Fingerprint string     `db:"fingerprint"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Link        *string    `db:"link"`
	Category    *string    `db:"category"`
	GUID        string     `db:"guid"`
	PubDateRaw  string     `db:"pub_date_raw"`
	PublishedAt *time.Time `db:"published_at"`
	AddedAt     time.Time  `db:"added_at"`
	SourceID    string     `db:"source_id"`
	SourceName  string     `db:"source_name"`
	SourceURL   string     `db:"source_url"`
	Seen        bool       `db:"seen"`
}

const articleColumns = `id, fingerprint, title, description, link, category, guid, pub_date_raw,
	published_at, added_at, source_id, source_name, source_url, seen`

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// InsertAndTrim inserts articles skipping known fingerprints, then evicts the oldest inserted
// articles past maxArticles. Both steps run in one transaction, nothing is kept on error.
// maxArticles <= 0 disables eviction.
func (r *ArticleRepository) InsertAndTrim(ctx context.Context, articles []domain.StoredArticle, maxArticles int) (added, evicted int, err error) {
	query := `
		INSERT INTO articles (
			fingerprint, title, description, link, category, guid, pub_date_raw,
			published_at, added_at, source_id, source_name, source_url, seen
		) VALUES (
			:fingerprint, :title, :description, :link, :category, :guid, :pub_date_raw,
			:published_at, :added_at, :source_id, :source_name, :source_url, :seen
		)
		ON CONFLICT(fingerprint) DO NOTHING
	`

	err = withLockRetry(ctx, func() error {
		added, evicted = 0, 0
		return inTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
			for i := range articles {
				res, err := tx.NamedExecContext(ctx, query, toArticleSQL(articles[i]))
				if err != nil {
					return fmt.Errorf("insert article %q: %w", articles[i].Fingerprint, err)
				}
				n, err := res.RowsAffected()
				if err != nil {
					return fmt.Errorf("get rows affected: %w", err)
				}
				added += int(n) // zero means the fingerprint is already stored
			}

			if maxArticles <= 0 {
				return nil
			}

			var total int
			if err := tx.GetContext(ctx, &total, "SELECT COUNT(*) FROM articles"); err != nil {
				return fmt.Errorf("count articles: %w", err)
			}
			if total <= maxArticles {
				return nil
			}

			del := tx.Rebind("DELETE FROM articles WHERE id IN (SELECT id FROM articles ORDER BY id ASC LIMIT ?)")
			res, err := tx.ExecContext(ctx, del, total-maxArticles)
			if err != nil {
				return fmt.Errorf("evict articles: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			evicted = int(n)
			return nil
		})
	})
	if err != nil {
		return 0, 0, err
	}
	return added, evicted, nil
}

// MarkSeen flags articles as seen, unknown ids are ignored
func (r *ArticleRepository) MarkSeen(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("UPDATE articles SET seen = TRUE WHERE seen = FALSE AND id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("build mark seen query: %w", err)
	}
	return r.exec(ctx, "mark seen", r.db.Rebind(query), args...)
}

// ClearSeen resets the seen flag on all articles
func (r *ArticleRepository) ClearSeen(ctx context.Context) (int, error) {
	return r.exec(ctx, "clear seen", "UPDATE articles SET seen = FALSE WHERE seen = TRUE")
}

// DeleteSourcesNotIn removes articles whose source is not in sourceIDs. Empty sourceIDs removes everything.
func (r *ArticleRepository) DeleteSourcesNotIn(ctx context.Context, sourceIDs []string) (int, error) {
	if len(sourceIDs) == 0 {
		return r.DeleteAll(ctx)
	}
	query, args, err := sqlx.In("DELETE FROM articles WHERE source_id NOT IN (?)", sourceIDs)
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}
	return r.exec(ctx, "delete sources", r.db.Rebind(query), args...)
}

// DeleteAll removes all articles
func (r *ArticleRepository) DeleteAll(ctx context.Context) (int, error) {
	return r.exec(ctx, "delete all articles", "DELETE FROM articles")
}

// Count returns the number of stored articles
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// CountUnseen returns the number of articles not marked as seen
func (r *ArticleRepository) CountUnseen(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE seen = FALSE"); err != nil {
		return 0, fmt.Errorf("count unseen articles: %w", err)
	}
	return count, nil
}

// CountBySource returns article counts keyed by source name, "unknown" for unnamed sources
func (r *ArticleRepository) CountBySource(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Name  string `db:"name"`
		Count int    `db:"cnt"`
	}
	query := `
		SELECT COALESCE(NULLIF(source_name, ''), 'unknown') AS name, COUNT(*) AS cnt
		FROM articles
		GROUP BY COALESCE(NULLIF(source_name, ''), 'unknown')
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}

	res := make(map[string]int, len(rows))
	for _, row := range rows {
		res[row.Name] = row.Count
	}
	return res, nil
}

// ActiveSources returns distinct sources present in the store, ordered by name
func (r *ArticleRepository) ActiveSources(ctx context.Context) ([]domain.SourceInfo, error) {
	var sources []domain.SourceInfo
	query := `
		SELECT source_id, MAX(source_name) AS source_name
		FROM articles
		GROUP BY source_id
		ORDER BY MAX(source_name), source_id
	`
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, fmt.Errorf("get active sources: %w", err)
	}
	return sources, nil
}

// List returns one page of articles and the total number matching the filter.
// Page and PageSize are expected to be normalized by the caller.
func (r *ArticleRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.StoredArticle, int, error) {
	where, args := "", []any{}
	if q.SourceID != "" {
		where = "WHERE source_id = ?"
		args = append(args, q.SourceID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM articles "+where), args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM articles %s ORDER BY %s LIMIT ? OFFSET ?", articleColumns, where, orderBy(q.Sort))
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	res := make([]domain.StoredArticle, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res, total, nil
}

// exec runs a statement with lock retry and returns the number of affected rows
func (r *ArticleRepository) exec(ctx context.Context, op, query string, args ...any) (int, error) {
	var affected int
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		affected = int(n)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// orderBy maps a sort mode to an ORDER BY clause, unknown modes sort by date
func orderBy(mode string) string {
	switch mode {
	case domain.SortTitle:
		return "LOWER(title) ASC, added_at DESC, id DESC"
	case domain.SortSource:
		return "source_name ASC, added_at DESC, id DESC"
	default:
		return "published_at DESC NULLS LAST, added_at DESC, id DESC"
	}
}

func toArticleSQL(a domain.StoredArticle) articleSQL {
	var published *time.Time
	if a.PublishedAt != nil {
		p := a.PublishedAt.UTC()
		published = &p
	}
	return articleSQL{
		Fingerprint: a.Fingerprint,
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		Category:    a.Category,
		GUID:        a.GUID,
		PubDateRaw:  a.PubDateRaw,
		PublishedAt: published,
		AddedAt:     a.AddedAt.UTC(),
		SourceID:    a.SourceID,
		SourceName:  a.SourceName,
		SourceURL:   a.SourceURL,
		Seen:        a.Seen,
	}
}

func (a *articleSQL) toDomain() domain.StoredArticle {
	return domain.StoredArticle{
		ID:          a.ID,
		Fingerprint: a.Fingerprint,
		Seen:        a.Seen,
		Article: domain.Article{
			Title:       a.Title,
			Description: a.Description,
			Link:        a.Link,
			Category:    a.Category,
			GUID:        a.GUID,
			PubDateRaw:  a.PubDateRaw,
			PublishedAt: a.PublishedAt,
			AddedAt:     a.AddedAt,
			SourceID:    a.SourceID,
			SourceName:  a.SourceName,
			SourceURL:   a.SourceURL,
		},
	}
}
