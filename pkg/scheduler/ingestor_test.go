package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
	"github.com/umputun/newshub/pkg/scheduler/mocks"
)

func testFeeds(ids ...string) []domain.Feed {
	res := make([]domain.Feed, 0, len(ids))
	for _, id := range ids {
		res = append(res, domain.Feed{ID: id, Name: id, URL: "http://example.com/" + id, Category: domain.CategoryCustom})
	}
	return res
}

func batchesFor(fetchID string, feeds []domain.Feed) []domain.Batch {
	res := make([]domain.Batch, 0, len(feeds))
	for _, f := range feeds {
		res = append(res, domain.Batch{FetchID: fetchID, SourceID: f.ID, SourceName: f.Name, SourceURL: f.URL, Items: []domain.Article{}})
	}
	return res
}

func TestIngestor_RefreshOnce(t *testing.T) {
	feeds := &mocks.FeedSourceMock{SelectedFeedsFunc: func(context.Context) ([]domain.Feed, error) {
		return testFeeds("a", "b", "c"), nil
	}}
	fetcher := &mocks.BatchFetcherMock{FetchManyFunc: func(_ context.Context, fetchID string, f []domain.Feed) []domain.Batch {
		return batchesFor(fetchID, f)
	}}
	pub := &mocks.PublisherMock{PublishFunc: func(_ context.Context, b domain.Batch) error {
		if b.SourceID == "b" {
			return errors.New("store down")
		}
		return nil
	}}

	ing := NewIngestor(IngestorParams{Feeds: feeds, Fetcher: fetcher, Publisher: pub})
	run := ing.RefreshOnce(context.Background())
	ing.Wait()

	assert.True(t, run.OK())
	assert.False(t, run.Busy)
	assert.NotEmpty(t, run.FetchID)
	assert.Equal(t, 3, run.BatchCount)

	require.Len(t, fetcher.FetchManyCalls(), 1)
	assert.Equal(t, run.FetchID, fetcher.FetchManyCalls()[0].FetchID)
	require.Len(t, pub.PublishCalls(), 3, "failed publish doesn't stop the rest")
	for _, c := range pub.PublishCalls() {
		assert.Equal(t, run.FetchID, c.Batch.FetchID)
	}

	second := ing.RefreshOnce(context.Background())
	ing.Wait()
	assert.NotEqual(t, run.FetchID, second.FetchID, "each cycle gets a fresh fetch id")
}

func TestIngestor_RefreshOnceBusy(t *testing.T) {
	release := make(chan struct{})
	var published atomic.Int32
	ing := NewIngestor(IngestorParams{
		Feeds: FeedSourceFunc(func(context.Context) ([]domain.Feed, error) { return testFeeds("a"), nil }),
		Fetcher: &mocks.BatchFetcherMock{FetchManyFunc: func(_ context.Context, fetchID string, f []domain.Feed) []domain.Batch {
			return batchesFor(fetchID, f)
		}},
		Publisher: &mocks.PublisherMock{PublishFunc: func(context.Context, domain.Batch) error {
			<-release
			published.Add(1)
			return nil
		}},
	})

	first := ing.RefreshOnce(context.Background())
	require.True(t, first.OK())

	busy := ing.RefreshOnce(context.Background())
	assert.True(t, busy.Busy, "publishing of the first cycle still in progress")
	assert.Empty(t, busy.FetchID)
	assert.Equal(t, domain.TriggerWait, ing.Trigger(context.Background()).Kind)

	close(release)
	ing.Wait()
	assert.Equal(t, int32(1), published.Load())

	again := ing.RefreshOnce(context.Background())
	ing.Wait()
	assert.False(t, again.Busy)
	assert.True(t, again.OK())
}

func TestIngestor_RefreshOnceFeedsError(t *testing.T) {
	fetcher := &mocks.BatchFetcherMock{}
	ing := NewIngestor(IngestorParams{
		Feeds:     FeedSourceFunc(func(context.Context) ([]domain.Feed, error) { return nil, errors.New("api unreachable") }),
		Fetcher:   fetcher,
		Publisher: &mocks.PublisherMock{},
	})

	run := ing.RefreshOnce(context.Background())
	assert.False(t, run.OK())
	require.NotNil(t, run.Error)
	assert.Contains(t, *run.Error, "api unreachable")
	assert.Empty(t, fetcher.FetchManyCalls())

	tr := ing.Trigger(context.Background())
	assert.Equal(t, domain.TriggerFailed, tr.Kind, "guard released after failure")
	assert.Contains(t, tr.Message, "api unreachable")
}

func TestIngestor_RefreshOnceNoFeeds(t *testing.T) {
	fetcher := &mocks.BatchFetcherMock{}
	pub := &mocks.PublisherMock{}
	ing := NewIngestor(IngestorParams{
		Feeds:     FeedSourceFunc(func(context.Context) ([]domain.Feed, error) { return []domain.Feed{}, nil }),
		Fetcher:   fetcher,
		Publisher: pub,
	})

	tr := ing.Trigger(context.Background())
	ing.Wait()
	assert.Equal(t, domain.TriggerOK, tr.Kind)
	assert.Equal(t, 0, tr.BatchCount)
	assert.NotEmpty(t, tr.FetchID)
	assert.Empty(t, fetcher.FetchManyCalls())
	assert.Empty(t, pub.PublishCalls())
}

func TestIngestor_PublishOutlivesCaller(t *testing.T) {
	var canceled atomic.Int32
	pub := &mocks.PublisherMock{PublishFunc: func(ctx context.Context, _ domain.Batch) error {
		time.Sleep(10 * time.Millisecond)
		if ctx.Err() != nil {
			canceled.Add(1)
		}
		return ctx.Err()
	}}
	ing := NewIngestor(IngestorParams{
		Feeds: FeedSourceFunc(func(context.Context) ([]domain.Feed, error) { return testFeeds("a", "b"), nil }),
		Fetcher: &mocks.BatchFetcherMock{FetchManyFunc: func(_ context.Context, fetchID string, f []domain.Feed) []domain.Batch {
			return batchesFor(fetchID, f)
		}},
		Publisher:      pub,
		PublishTimeout: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	run := ing.RefreshOnce(ctx)
	cancel()
	ing.Wait()

	assert.Equal(t, 2, run.BatchCount)
	assert.Len(t, pub.PublishCalls(), 2)
	assert.Equal(t, int32(0), canceled.Load(), "request cancel doesn't abort publishing")
}
