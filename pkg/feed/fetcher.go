package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newshub/pkg/domain"
)

// Fetcher retrieves RSS/Atom feeds and normalizes their items into articles.
// Each feed gets its own deadline; failures are isolated per feed.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgent  string
	maxWorkers int
	now        func() time.Time
}

// FetcherParams configures Fetcher
type FetcherParams struct {
	Timeout    time.Duration // per-feed deadline
	MaxWorkers int           // concurrent feeds in FetchMany
	UserAgent  string
	Client     *http.Client // optional, default client with pooled transport
}

// NewFetcher creates a new feed fetcher
func NewFetcher(params FetcherParams) *Fetcher {
	if params.Timeout <= 0 {
		params.Timeout = 15 * time.Second
	}
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	if params.UserAgent == "" {
		params.UserAgent = "Newshub/1.0"
	}
	client := params.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Fetcher{
		client:     client,
		timeout:    params.Timeout,
		userAgent:  params.UserAgent,
		maxWorkers: params.MaxWorkers,
		now:        time.Now,
	}
}

// Fetch retrieves one feed and returns its normalized articles.
// Items which can't be normalized are skipped, the rest of the feed is kept.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Feed) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.get(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	// gofeed parser keeps state while parsing, one per call
	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		article, err := normalizeItem(src, item, f.now())
		if err != nil {
			lgr.Printf("[DEBUG] skip item %d of %s: %v", i, src.ID, err)
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// FetchMany fetches all feeds concurrently and returns exactly one batch per feed,
// in input order. A failed feed produces an error batch and never affects the others.
func (f *Fetcher) FetchMany(ctx context.Context, fetchID string, feeds []domain.Feed) []domain.Batch {
	fetchedAt := f.now().UTC()
	batches := make([]domain.Batch, len(feeds))

	var g errgroup.Group
	g.SetLimit(f.maxWorkers)
	for i, src := range feeds {
		g.Go(func() error {
			batches[i] = f.fetchBatch(ctx, fetchID, fetchedAt, src)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, failures are carried in batches

	return batches
}

func (f *Fetcher) fetchBatch(ctx context.Context, fetchID string, fetchedAt time.Time, src domain.Feed) domain.Batch {
	batch := domain.Batch{
		FetchID:    fetchID,
		FetchedAt:  fetchedAt,
		SourceID:   src.ID,
		SourceName: src.Name,
		SourceURL:  src.URL,
		Items:      []domain.Article{},
	}

	items, err := f.Fetch(ctx, src)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch %s (%s): %v", src.ID, src.URL, err)
		batch.Error = domain.StrPtr(err.Error())
		return batch
	}

	lgr.Printf("[DEBUG] fetched %d items from %s", len(items), src.ID)
	batch.Items = items
	return batch
}

// get retrieves feed content from a URL
func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
