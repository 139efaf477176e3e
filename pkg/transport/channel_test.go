package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
)

func TestChannel_Delivers(t *testing.T) {
	ch := NewChannel(10, 3)
	ch.retryDelay = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	got := []string{}
	done := make(chan error)
	go func() {
		done <- ch.Run(ctx, func(_ context.Context, b domain.Batch) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, b.SourceID)
			return nil
		})
	}()

	require.NoError(t, ch.Publish(ctx, testBatch("f1", "a")))
	require.NoError(t, ch.Publish(ctx, testBatch("f1", "b")))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []string{"a", "b"}, got)
	mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestChannel_RetriesHandler(t *testing.T) {
	ch := NewChannel(1, 3)
	ch.retryDelay = time.Millisecond

	attempts := 0
	require.NoError(t, ch.Publish(context.Background(), testBatch("f1", "a")))
	require.NoError(t, ch.Close())

	err := ch.Run(context.Background(), func(context.Context, domain.Batch) error {
		attempts++
		if attempts < 3 {
			return errors.New("store busy")
		}
		return nil
	})
	require.NoError(t, err, "closed channel drains and stops")
	assert.Equal(t, 3, attempts)
}

func TestChannel_DropsAfterRetries(t *testing.T) {
	ch := NewChannel(2, 2)
	ch.retryDelay = time.Millisecond

	require.NoError(t, ch.Publish(context.Background(), testBatch("f1", "a")))
	require.NoError(t, ch.Publish(context.Background(), testBatch("f1", "b")))
	require.NoError(t, ch.Close())

	calls := map[string]int{}
	err := ch.Run(context.Background(), func(_ context.Context, b domain.Batch) error {
		calls[b.SourceID]++
		if b.SourceID == "a" {
			return errors.New("always fails")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, calls, "failed batch doesn't block the next one")
}

func TestChannel_PublishAfterClose(t *testing.T) {
	ch := NewChannel(1, 1)
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close(), "close is idempotent")
	assert.ErrorIs(t, ch.Publish(context.Background(), testBatch("f1", "a")), ErrClosed)
}

func TestChannel_PublishBlocksUntilCanceled(t *testing.T) {
	ch := NewChannel(1, 1)
	require.NoError(t, ch.Publish(context.Background(), testBatch("f1", "a")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, ch.Publish(ctx, testBatch("f1", "b")), context.DeadlineExceeded)
}
