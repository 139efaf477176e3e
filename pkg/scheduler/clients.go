package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newshub/pkg/domain"
)

// endpoints used by the clients
const (
	SelectedFeedsPath = "/api/v1/feeds/selected"
	RefreshPath       = "/internal/refresh"
)

// FeedsClient gets the selected feeds from the storing side over http
type FeedsClient struct {
	url     string
	client  *http.Client
	retries int
	delay   time.Duration
}

// NewFeedsClient makes a client for baseURL, retrying failed requests
func NewFeedsClient(baseURL string, timeout time.Duration, retries int) *FeedsClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retries <= 0 {
		retries = 3
	}
	return &FeedsClient{
		url:     strings.TrimSuffix(baseURL, "/") + SelectedFeedsPath,
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		delay:   250 * time.Millisecond,
	}
}

// SelectedFeeds returns the selected feeds
func (c *FeedsClient) SelectedFeeds(ctx context.Context) ([]domain.Feed, error) {
	var feeds []domain.Feed
	err := repeater.NewBackoff(c.retries, c.delay, repeater.WithMaxDelay(5*time.Second)).Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
		if err != nil {
			return fmt.Errorf("make request: %w", err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("get selected feeds: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		feeds = nil
		if err := json.NewDecoder(resp.Body).Decode(&feeds); err != nil {
			return fmt.Errorf("decode selected feeds: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feeds, nil
}

// RefreshClient asks the fetching side to run a cycle
type RefreshClient struct {
	url    string
	client *http.Client
}

// NewRefreshClient makes a client for the ingestor at baseURL
func NewRefreshClient(baseURL string, timeout time.Duration) *RefreshClient {
	if timeout <= 0 {
		timeout = 2 * time.Minute // the ingestor answers after fetching all feeds
	}
	return &RefreshClient{url: strings.TrimSuffix(baseURL, "/") + RefreshPath, client: &http.Client{Timeout: timeout}}
}

// Trigger requests a refresh. Transport failures are reported as a failed result, never as an error.
func (c *RefreshClient) Trigger(ctx context.Context) domain.TriggerResult {
	failed := func(format string, args ...any) domain.TriggerResult {
		msg := fmt.Sprintf(format, args...)
		lgr.Printf("[WARN] refresh request failed: %s", msg)
		return domain.TriggerResult{Kind: domain.TriggerFailed, Message: msg}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, http.NoBody)
	if err != nil {
		return failed("make request: %v", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return failed("ingestor unavailable: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return failed("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return failed("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var run domain.RefreshRun
	if err := json.Unmarshal(body, &run); err != nil {
		return failed("decode refresh response: %v", err)
	}
	return domain.TriggerFromRun(run)
}
