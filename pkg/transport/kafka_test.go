package transport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// fakeReader fails the first fails fetches, serves queued messages, then blocks until ctx is canceled
type fakeReader struct {
	mu        sync.Mutex
	fails     int
	fetches   int
	queue     []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	r.fetches++
	if r.fails > 0 {
		r.fails--
		r.mu.Unlock()
		return kafka.Message{}, errors.New("broker down")
	}
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.committed...)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: DefaultKafkaTopic}

	require.NoError(t, p.Publish(context.Background(), testBatch("f1", "a", "X")))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "a", string(w.msgs[0].Key), "keyed by source id")
	assert.Equal(t, "fetchId", w.msgs[0].Headers[0].Key)
	assert.Equal(t, "f1", string(w.msgs[0].Headers[0].Value))

	b, err := Decode(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "X", b.Items[0].Title)

	w.err = errors.New("broker down")
	err = p.Publish(context.Background(), testBatch("f1", "b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewKafka_NoBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaParams{})
	require.Error(t, err)
	_, err = NewKafkaConsumer(KafkaParams{})
	require.Error(t, err)
}

func TestKafkaConsumer_Run(t *testing.T) {
	good, err := Encode(testBatch("f1", "a", "X"))
	require.NoError(t, err)
	failing, err := Encode(testBatch("f1", "bad", "Y"))
	require.NoError(t, err)

	r := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: good},
		{Offset: 2, Value: []byte("garbage")},
		{Offset: 3, Value: failing},
		{Offset: 4, Value: good},
	}}
	c := newKafkaConsumer(r, 2)
	c.retryDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	calls := map[string]int{}
	done := make(chan error)
	go func() {
		done <- c.Run(ctx, func(_ context.Context, b domain.Batch) error {
			mu.Lock()
			defer mu.Unlock()
			calls[b.SourceID]++
			if b.SourceID == "bad" {
				return errors.New("store failed")
			}
			return nil
		})
	}()

	assert.Eventually(t, func() bool { return len(r.commits()) == 4 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []int64{1, 2, 3, 4}, r.commits(), "every message committed after handling")
	mu.Lock()
	assert.Equal(t, map[string]int{"a": 2, "bad": 2}, calls, "redelivered message passed to the handler again")
	mu.Unlock()
	require.NoError(t, c.Close())
}

func TestKafkaConsumer_RunRetriesFetch(t *testing.T) {
	good, err := Encode(testBatch("f1", "a", "X"))
	require.NoError(t, err)

	t.Run("broker recovers", func(t *testing.T) {
		r := &fakeReader{fails: 3, queue: []kafka.Message{{Offset: 7, Value: good}}}
		c := newKafkaConsumer(r, 1)
		c.retryDelay = time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		var handled sync.WaitGroup
		handled.Add(1)
		go func() {
			done <- c.Run(ctx, func(context.Context, domain.Batch) error {
				handled.Done()
				return nil
			})
		}()

		assert.Eventually(t, func() bool { return len(r.commits()) == 1 }, time.Second, 5*time.Millisecond)
		handled.Wait()
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled, "consumer kept running after fetch errors")
		assert.Equal(t, []int64{7}, r.commits())
	})

	t.Run("broker stays down", func(t *testing.T) {
		r := &fakeReader{fails: 100}
		c := newKafkaConsumer(r, 1)
		c.retryDelay, c.fetchRetries = time.Millisecond, 3

		err := c.Run(context.Background(), func(context.Context, domain.Batch) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
		r.mu.Lock()
		assert.Equal(t, 3, r.fetches)
		r.mu.Unlock()
	})
}
