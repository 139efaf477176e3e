package transport

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newshub/pkg/domain"
)

// Channel is an in-process transport for single-process mode.
// Publish blocks while the buffer is full.
type Channel struct {
	ch         chan domain.Batch
	done       chan struct{}
	closeOnce  sync.Once
	retries    int
	retryDelay time.Duration
}

// NewChannel makes a channel transport with the given buffer size and handler retries
func NewChannel(size, retries int) *Channel {
	if size < 1 {
		size = 1
	}
	if retries < 1 {
		retries = 1
	}
	return &Channel{ch: make(chan domain.Batch, size), done: make(chan struct{}), retries: retries, retryDelay: 100 * time.Millisecond}
}

// Publish queues a batch
func (c *Channel) Publish(ctx context.Context, batch domain.Batch) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.ch <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

// Run delivers queued batches to the handler until ctx is canceled or the channel is closed.
// After Close, batches already queued are still delivered.
func (c *Channel) Run(ctx context.Context, handler Handler) error {
	lgr.Printf("[INFO] channel transport consumer started")
	defer lgr.Printf("[INFO] channel transport consumer stopped")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch := <-c.ch:
			c.deliver(ctx, handler, batch)
		case <-c.done:
			for {
				select {
				case batch := <-c.ch:
					c.deliver(ctx, handler, batch)
				default:
					return nil
				}
			}
		}
	}
}

// Close stops accepting batches
func (c *Channel) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *Channel) deliver(ctx context.Context, handler Handler, batch domain.Batch) {
	err := repeater.NewBackoff(c.retries, c.retryDelay, repeater.WithMaxDelay(5*time.Second)).Do(ctx, func() error {
		return handler(ctx, batch)
	})
	if err != nil {
		lgr.Printf("[WARN] batch %s from %s dropped after %d attempts: %v", batch.FetchID, batch.SourceID, c.retries, err)
	}
}
