package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/segmentio/kafka-go"

	"github.com/umputun/newshub/pkg/domain"
)

// kafka defaults
const (
	DefaultKafkaTopic = "newshub.news"
	DefaultKafkaGroup = "newshub-api"
)

// KafkaParams configures kafka publisher and consumer
type KafkaParams struct {
	Brokers []string
	Topic   string // DefaultKafkaTopic if empty
	GroupID string // DefaultKafkaGroup if empty, consumer only
	Retries int    // handler attempts per message before it is skipped, 5 if 0
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes batches to a topic keyed by source id, so batches of one feed stay ordered
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher makes a publisher for params.Brokers
func NewKafkaPublisher(params KafkaParams) (*KafkaPublisher, error) {
	if len(params.Brokers) == 0 {
		return nil, errors.New("no kafka brokers")
	}
	if params.Topic == "" {
		params.Topic = DefaultKafkaTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(params.Brokers...),
		Topic:                  params.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w, topic: params.Topic}, nil
}

// Publish writes one batch message
func (p *KafkaPublisher) Publish(ctx context.Context, batch domain.Batch) error {
	data, err := Encode(batch)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(batch.SourceID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "fetchId", Value: []byte(batch.FetchID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write batch %s from %s to %s: %w", batch.FetchID, batch.SourceID, p.topic, err)
	}
	lgr.Printf("[DEBUG] batch %s from %s written to %s", batch.FetchID, batch.SourceID, p.topic)
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

// KafkaConsumer reads batches in a consumer group and commits each message after handling it
type KafkaConsumer struct {
	reader       messageReader
	retries      int
	fetchRetries int
	retryDelay   time.Duration
}

// NewKafkaConsumer makes a consumer group reader for params.Topic
func NewKafkaConsumer(params KafkaParams) (*KafkaConsumer, error) {
	if len(params.Brokers) == 0 {
		return nil, errors.New("no kafka brokers")
	}
	if params.Topic == "" {
		params.Topic = DefaultKafkaTopic
	}
	if params.GroupID == "" {
		params.GroupID = DefaultKafkaGroup
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  params.Brokers,
		GroupID:  params.GroupID,
		Topic:    params.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return newKafkaConsumer(r, params.Retries), nil
}

func newKafkaConsumer(r messageReader, retries int) *KafkaConsumer {
	if retries <= 0 {
		retries = 5
	}
	return &KafkaConsumer{reader: r, retries: retries, fetchRetries: 20, retryDelay: 200 * time.Millisecond}
}

// Run fetches messages and passes decoded batches to handler until ctx is canceled.
// A message that can't be decoded, or keeps failing in the handler, is logged and committed.
// Broker errors are retried with backoff, Run fails only when the broker stays unreachable.
func (c *KafkaConsumer) Run(ctx context.Context, handler Handler) error {
	lgr.Printf("[INFO] kafka consumer started")
	defer lgr.Printf("[INFO] kafka consumer stopped")
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetch kafka message: %w", err)
		}

		c.handle(ctx, handler, msg)
		if ctx.Err() != nil {
			return ctx.Err() // not committed, redelivered to the group after restart
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			lgr.Printf("[WARN] failed to commit offset %d of partition %d: %v", msg.Offset, msg.Partition, err)
		}
	}
}

// fetch reads the next message, io.EOF of a closed reader is not retried
func (c *KafkaConsumer) fetch(ctx context.Context) (msg kafka.Message, err error) {
	err = repeater.NewBackoff(c.fetchRetries, c.retryDelay, repeater.WithMaxDelay(30*time.Second)).Do(ctx, func() error {
		var fetchErr error
		if msg, fetchErr = c.reader.FetchMessage(ctx); fetchErr != nil && ctx.Err() == nil {
			lgr.Printf("[WARN] failed to fetch kafka message: %v", fetchErr)
		}
		return fetchErr
	}, io.EOF)
	return msg, err
}

// Close closes the reader
func (c *KafkaConsumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("close kafka reader: %w", err)
	}
	return nil
}

func (c *KafkaConsumer) handle(ctx context.Context, handler Handler, msg kafka.Message) {
	batch, err := Decode(msg.Value)
	if err != nil {
		lgr.Printf("[WARN] skip undecodable message at offset %d of partition %d: %v", msg.Offset, msg.Partition, err)
		return
	}

	err = repeater.NewBackoff(c.retries, c.retryDelay, repeater.WithMaxDelay(5*time.Second)).Do(ctx, func() error {
		return handler(ctx, batch)
	})
	if err != nil && ctx.Err() == nil {
		lgr.Printf("[ERROR] batch %s from %s skipped after %d attempts: %v", batch.FetchID, batch.SourceID, c.retries, err)
	}
}
