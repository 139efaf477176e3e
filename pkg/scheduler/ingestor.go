package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/newshub/pkg/domain"
)

//go:generate moq -out mocks/feed_source.go -pkg mocks -skip-ensure -fmt goimports . FeedSource
//go:generate moq -out mocks/batch_fetcher.go -pkg mocks -skip-ensure -fmt goimports . BatchFetcher
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// FeedSource provides the currently selected feeds
type FeedSource interface {
	SelectedFeeds(ctx context.Context) ([]domain.Feed, error)
}

// BatchFetcher fetches feeds into batches, one batch per feed
type BatchFetcher interface {
	FetchMany(ctx context.Context, fetchID string, feeds []domain.Feed) []domain.Batch
}

// Publisher sends batches to the storing side
type Publisher interface {
	Publish(ctx context.Context, batch domain.Batch) error
}

// FeedSourceFunc adapts a function to FeedSource
type FeedSourceFunc func(ctx context.Context) ([]domain.Feed, error)

// SelectedFeeds calls f
func (f FeedSourceFunc) SelectedFeeds(ctx context.Context) ([]domain.Feed, error) { return f(ctx) }

// Ingestor runs fetch cycles: fetch all selected feeds, then hand batches to the publisher
// in the background. Only one cycle runs at a time.
type Ingestor struct {
	feeds          FeedSource
	fetcher        BatchFetcher
	publisher      Publisher
	publishTimeout time.Duration

	running atomic.Bool
	wg      sync.WaitGroup
}

// IngestorParams configures Ingestor
type IngestorParams struct {
	Feeds          FeedSource
	Fetcher        BatchFetcher
	Publisher      Publisher
	PublishTimeout time.Duration // per batch, 30s if 0
}

// NewIngestor makes an ingestor
func NewIngestor(params IngestorParams) *Ingestor {
	if params.PublishTimeout <= 0 {
		params.PublishTimeout = 30 * time.Second
	}
	return &Ingestor{
		feeds:          params.Feeds,
		fetcher:        params.Fetcher,
		publisher:      params.Publisher,
		publishTimeout: params.PublishTimeout,
	}
}

// RefreshOnce fetches selected feeds under a fresh fetch id and starts publishing the batches.
// It returns once fetching is done, without waiting for delivery.
// While a previous cycle is still fetching or publishing, it returns a busy run.
func (i *Ingestor) RefreshOnce(ctx context.Context) domain.RefreshRun {
	if !i.running.CompareAndSwap(false, true) {
		lgr.Printf("[INFO] refresh skipped, previous cycle still running")
		return domain.RefreshRun{Busy: true}
	}

	fetchID := uuid.NewString()
	feeds, err := i.feeds.SelectedFeeds(ctx)
	if err != nil {
		i.running.Store(false)
		lgr.Printf("[WARN] refresh %s failed to get selected feeds: %v", fetchID, err)
		return domain.RefreshRun{FetchID: fetchID, Error: domain.StrPtr(fmt.Sprintf("get selected feeds: %v", err))}
	}

	lgr.Printf("[INFO] refresh %s started, %d feeds", fetchID, len(feeds))
	batches := []domain.Batch{}
	if len(feeds) > 0 {
		batches = i.fetcher.FetchMany(ctx, fetchID, feeds)
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		defer i.running.Store(false)
		i.publishAll(context.WithoutCancel(ctx), fetchID, batches)
	}()

	return domain.RefreshRun{FetchID: fetchID, BatchCount: len(batches)}
}

// Trigger runs one cycle and reports it as a trigger result
func (i *Ingestor) Trigger(ctx context.Context) domain.TriggerResult {
	return domain.TriggerFromRun(i.RefreshOnce(ctx))
}

// Wait blocks until background publishing of started cycles is done
func (i *Ingestor) Wait() {
	i.wg.Wait()
}

// publishAll publishes batches one by one, failures are logged and don't stop the rest
func (i *Ingestor) publishAll(ctx context.Context, fetchID string, batches []domain.Batch) {
	failed := 0
	for _, b := range batches {
		pctx, cancel := context.WithTimeout(ctx, i.publishTimeout)
		if err := i.publisher.Publish(pctx, b); err != nil {
			failed++
			lgr.Printf("[WARN] failed to publish batch %s from %s: %v", fetchID, b.SourceID, err)
		}
		cancel()
	}
	lgr.Printf("[INFO] refresh %s published %d of %d batches", fetchID, len(batches)-failed, len(batches))
}
