// Package ingest implements the storing side of the batch protocol. Each batch is deduplicated
// by fingerprint, persisted and trimmed to capacity in one transaction. Fetch errors go to a
// bounded ring of recent errors.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newshub/pkg/dedup"
	"github.com/umputun/newshub/pkg/domain"
)

// defaults for Params
const (
	DefaultMaxArticles = 500
	DefaultMaxErrors   = 25
	DefaultPageSize    = 20
	MaxPageSize        = 200
)

// Repository is the article storage used by the service
type Repository interface {
	InsertAndTrim(ctx context.Context, articles []domain.StoredArticle, maxArticles int) (added, evicted int, err error)
	MarkSeen(ctx context.Context, ids []int64) (int, error)
	ClearSeen(ctx context.Context) (int, error)
	DeleteSourcesNotIn(ctx context.Context, sourceIDs []string) (int, error)
	Count(ctx context.Context) (int, error)
	CountUnseen(ctx context.Context) (int, error)
	CountBySource(ctx context.Context) (map[string]int, error)
	ActiveSources(ctx context.Context) ([]domain.SourceInfo, error)
	List(ctx context.Context, q domain.ListQuery) ([]domain.StoredArticle, int, error)
}

// Settings keeps named time values between restarts
type Settings interface {
	GetTime(ctx context.Context, key string) (*time.Time, error)
	SetTime(ctx context.Context, key string, ts time.Time) error
}

// Params configures the service
type Params struct {
	MaxArticles int      // capacity of the store, DefaultMaxArticles if 0
	MaxErrors   int      // capacity of the error ring, DefaultMaxErrors if 0
	Settings    Settings // optional, persists the last fetch time
}

// Service ingests batches and answers store queries
type Service struct {
	repo        Repository
	settings    Settings
	maxArticles int
	errors      *ErrorRing

	ingestMu sync.Mutex // one batch at a time

	fetchMu   sync.RWMutex
	lastFetch *time.Time
}

// NewService makes an ingestion service and restores the last fetch time if settings are set
func NewService(ctx context.Context, repo Repository, params Params) *Service {
	if params.MaxArticles == 0 {
		params.MaxArticles = DefaultMaxArticles
	}
	if params.MaxErrors <= 0 {
		params.MaxErrors = DefaultMaxErrors
	}
	s := &Service{
		repo:        repo,
		settings:    params.Settings,
		maxArticles: params.MaxArticles,
		errors:      NewErrorRing(params.MaxErrors),
	}

	if s.settings != nil {
		ts, err := s.settings.GetTime(ctx, domain.SettingLastFetchTime)
		if err != nil {
			lgr.Printf("[WARN] can't load last fetch time: %v", err)
		}
		s.lastFetch = ts
	}
	return s
}

// Ingest applies one batch. A redelivered batch adds nothing. An error batch only records the
// error and the fetch time. A storage failure rolls the whole batch back and is returned.
func (s *Service) Ingest(ctx context.Context, batch domain.Batch) (domain.IngestResult, error) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	if !batch.OK() {
		msg := batch.ErrorText()
		lgr.Printf("[WARN] fetch of %s (%s) failed: %s", batch.SourceName, batch.SourceURL, msg)
		s.errors.Push(msg)
		s.recordFetch(ctx, batch.FetchedAt)
		return domain.IngestResult{Added: 0, Errors: []string{msg}}, nil
	}

	fresh := make([]domain.StoredArticle, 0, len(batch.Items))
	inBatch := make(map[string]struct{}, len(batch.Items))
	for _, item := range batch.Items {
		if item.SourceID == "" {
			item.SourceID, item.SourceName, item.SourceURL = batch.SourceID, batch.SourceName, batch.SourceURL
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = batch.FetchedAt
		}
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now().UTC()
		}
		fp := dedup.Fingerprint(item)
		if _, dup := inBatch[fp]; dup {
			continue
		}
		inBatch[fp] = struct{}{}
		fresh = append(fresh, domain.StoredArticle{Article: item, Fingerprint: fp})
	}

	added, evicted := 0, 0
	if len(fresh) > 0 {
		var err error
		added, evicted, err = s.repo.InsertAndTrim(ctx, fresh, s.maxArticles)
		if err != nil {
			s.errors.Push(fmt.Sprintf("store %s batch %s: %v", batch.SourceID, batch.FetchID, err))
			return domain.IngestResult{Errors: []string{err.Error()}}, fmt.Errorf("ingest batch %s from %s: %w", batch.FetchID, batch.SourceID, err)
		}
	}

	s.recordFetch(ctx, batch.FetchedAt)
	lgr.Printf("[DEBUG] ingested batch %s from %s, items %d, added %d, evicted %d",
		batch.FetchID, batch.SourceID, len(batch.Items), added, evicted)
	return domain.IngestResult{Added: added, Errors: []string{}}, nil
}

// MarkSeen flags articles as delivered to a view
func (s *Service) MarkSeen(ctx context.Context, ids []int64) (int, error) {
	n, err := s.repo.MarkSeen(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("mark seen: %w", err)
	}
	return n, nil
}

// ClearSeen makes all articles unseen again
func (s *Service) ClearSeen(ctx context.Context) (int, error) {
	n, err := s.repo.ClearSeen(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear seen: %w", err)
	}
	return n, nil
}

// RetainOnly removes articles from sources outside sourceIDs, an empty set removes all articles
func (s *Service) RetainOnly(ctx context.Context, sourceIDs []string) (int, error) {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()
	n, err := s.repo.DeleteSourcesNotIn(ctx, sourceIDs)
	if err != nil {
		return 0, fmt.Errorf("retain sources: %w", err)
	}
	if n > 0 {
		lgr.Printf("[INFO] removed %d articles of unselected sources", n)
	}
	return n, nil
}

// Stats reports the store state. Feed counts come from the catalog.
func (s *Service) Stats(ctx context.Context, totalFeeds, selectedFeeds int) (domain.Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	unseen, err := s.repo.CountUnseen(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	bySource, err := s.repo.CountBySource(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return domain.Stats{
		TotalStored:    total,
		TotalFeeds:     totalFeeds,
		SelectedFeeds:  selectedFeeds,
		UnseenCount:    unseen,
		LastFetchTime:  s.LastFetch(),
		CountsBySource: bySource,
		RecentErrors:   s.errors.List(),
	}, nil
}

// List returns one page of stored articles. Page starts at 1, page size is clamped to [1, MaxPageSize].
func (s *Service) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	q.Page = max(q.Page, 1)
	switch {
	case q.PageSize == 0:
		q.PageSize = DefaultPageSize
	case q.PageSize < 1:
		q.PageSize = 1
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	if q.Sort != domain.SortTitle && q.Sort != domain.SortSource {
		q.Sort = domain.SortDate
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list articles: %w", err)
	}
	pages := max(1, (total+q.PageSize-1)/q.PageSize)
	return domain.Page{Items: items, Page: q.Page, TotalPages: pages, TotalItems: total}, nil
}

// ActiveSources lists sources present in the store
func (s *Service) ActiveSources(ctx context.Context) ([]domain.SourceInfo, error) {
	res, err := s.repo.ActiveSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("active sources: %w", err)
	}
	return res, nil
}

// RecentErrors returns recent errors, newest first
func (s *Service) RecentErrors() []string {
	return s.errors.List()
}

// LastFetch returns the fetch time of the last applied batch, nil if none
func (s *Service) LastFetch() *time.Time {
	s.fetchMu.RLock()
	defer s.fetchMu.RUnlock()
	if s.lastFetch == nil {
		return nil
	}
	ts := *s.lastFetch
	return &ts
}

// recordFetch remembers the fetch time and persists it, persistence failures are only logged
func (s *Service) recordFetch(ctx context.Context, fetchedAt time.Time) {
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	ts := fetchedAt.UTC()
	s.fetchMu.Lock()
	s.lastFetch = &ts
	s.fetchMu.Unlock()

	if s.settings == nil {
		return
	}
	if err := s.settings.SetTime(ctx, domain.SettingLastFetchTime, ts); err != nil {
		lgr.Printf("[WARN] can't save last fetch time: %v", err)
	}
}
