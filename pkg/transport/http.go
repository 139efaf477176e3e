package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newshub/pkg/domain"
)

// BatchesPath is the store endpoint accepting batches
const BatchesPath = "/internal/batches"

// HTTPParams configures HTTPPublisher
type HTTPParams struct {
	StoreURL   string        // base url of the storing side
	Retries    int           // attempts per batch, 3 if 0
	RetryDelay time.Duration // initial backoff delay, 250ms if 0
	Timeout    time.Duration // per request, 10s if 0
	Client     *http.Client  // optional
}

// HTTPPublisher posts batches to the storing side
type HTTPPublisher struct {
	url        string
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

// NewHTTPPublisher makes a publisher posting to StoreURL + BatchesPath
func NewHTTPPublisher(params HTTPParams) *HTTPPublisher {
	if params.Retries <= 0 {
		params.Retries = 3
	}
	if params.RetryDelay <= 0 {
		params.RetryDelay = 250 * time.Millisecond
	}
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	if params.Client == nil {
		params.Client = &http.Client{Timeout: params.Timeout}
	}
	return &HTTPPublisher{
		url:        strings.TrimSuffix(params.StoreURL, "/") + BatchesPath,
		client:     params.Client,
		retries:    params.Retries,
		retryDelay: params.RetryDelay,
	}
}

// Publish posts the batch, retrying network errors and 5xx responses
func (p *HTTPPublisher) Publish(ctx context.Context, batch domain.Batch) error {
	body, err := Encode(batch)
	if err != nil {
		return err
	}

	retrier := repeater.NewBackoff(p.retries, p.retryDelay, repeater.WithMaxDelay(5*time.Second))
	err = retrier.Do(ctx, func() error {
		return p.post(ctx, body)
	}, errPermanent)
	if err != nil {
		return fmt.Errorf("publish batch %s from %s: %w", batch.FetchID, batch.SourceID, err)
	}
	lgr.Printf("[DEBUG] batch %s from %s posted, %d items", batch.FetchID, batch.SourceID, len(batch.Items))
	return nil
}

// Close is a no-op, the http client has nothing to release
func (p *HTTPPublisher) Close() error { return nil }

func (p *HTTPPublisher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return &permanentError{err: fmt.Errorf("make request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return &permanentError{err: statusErr}
	}
	return statusErr
}
