// Package transport moves batches from the fetching side to the storing side.
// Delivery is at-least-once for every transport, the storing side absorbs redelivery.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/newshub/pkg/domain"
)

// supported transport types
const (
	TypeChannel = "channel"
	TypeHTTP    = "http"
	TypeKafka   = "kafka"
)

// ErrClosed is returned when publishing to a closed transport
var ErrClosed = errors.New("transport closed")

// Publisher sends batches to the storing side
type Publisher interface {
	Publish(ctx context.Context, batch domain.Batch) error
	Close() error
}

// Handler consumes one delivered batch. A returned error means the batch was not applied.
type Handler func(ctx context.Context, batch domain.Batch) error

// Encode serializes a batch to its wire form
func Encode(batch domain.Batch) ([]byte, error) {
	if batch.Items == nil {
		batch.Items = []domain.Article{}
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}
	return data, nil
}

// Decode parses a batch from its wire form, a batch without source id is rejected
func Decode(data []byte) (domain.Batch, error) {
	var batch domain.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return domain.Batch{}, fmt.Errorf("decode batch: %w", err)
	}
	if strings.TrimSpace(batch.SourceID) == "" {
		return domain.Batch{}, errors.New("decode batch: missing sourceId")
	}
	if batch.Items == nil {
		batch.Items = []domain.Article{}
	}
	return batch, nil
}

// permanentError marks a delivery failure retrying can't fix
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Is makes permanentError match errPermanent, the repeater termination error
func (e *permanentError) Is(target error) bool { return target == errPermanent }

var errPermanent = errors.New("permanent failure")
