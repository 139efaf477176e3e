// Package catalog owns the list of known feeds and the current selection.
// All reads and mutations go through a single lock; callers only ever get copies.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/newshub/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store persists catalog entries and selection flags
type Store interface {
	LoadFeeds(ctx context.Context) ([]domain.FeedRecord, error)
	CreateFeeds(ctx context.Context, recs []domain.FeedRecord) error
	CreateFeed(ctx context.Context, rec domain.FeedRecord) error
	SetSelected(ctx context.Context, ids []string) error
}

// customPrefix marks ids of user-added feeds
const customPrefix = "custom_"

// Catalog is the ordered set of feeds with the selection state
type Catalog struct {
	store Store // optional, nil keeps everything in memory

	mu       sync.Mutex
	feeds    []domain.Feed
	index    map[string]int
	selected map[string]struct{}
	order    []string // selected ids in the order they were set
}

// New makes a catalog from seeds. With a store, seeds missing from storage are saved first
// (selected if listed in defaultSelected), then the stored feeds and selection are loaded.
func New(ctx context.Context, store Store, seeds []domain.Feed, defaultSelected []string) (*Catalog, error) {
	c := &Catalog{store: store, index: map[string]int{}, selected: map[string]struct{}{}}
	for _, f := range seeds {
		c.appendFeed(f)
	}
	c.setSelection(defaultSelected)

	if store == nil {
		return c, nil
	}

	existing, err := store.LoadFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, rec := range existing {
		known[rec.ID] = true
	}

	defaults := make(map[string]bool, len(defaultSelected))
	for _, id := range defaultSelected {
		defaults[id] = true
	}
	base := time.Now()
	missing := []domain.FeedRecord{}
	for i, f := range c.feeds {
		if known[f.ID] {
			continue
		}
		missing = append(missing, domain.FeedRecord{Feed: f, Selected: defaults[f.ID], CreatedAt: base.Add(time.Duration(i) * time.Millisecond)})
	}
	if len(missing) > 0 {
		if err := store.CreateFeeds(ctx, missing); err != nil {
			return nil, fmt.Errorf("save seed feeds: %w", err)
		}
		lgr.Printf("[INFO] saved %d seed feeds", len(missing))
	}

	stored, err := store.LoadFeeds(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	selection := []string{}
	for _, rec := range stored {
		c.appendFeed(rec.Feed)
		if rec.Selected {
			selection = append(selection, rec.ID)
		}
	}
	c.setSelection(selection)
	lgr.Printf("[DEBUG] catalog loaded, %d feeds, %d selected", len(c.feeds), len(selection))
	return c, nil
}

// ListAll returns all feeds in catalog order
func (c *Catalog) ListAll() []domain.Feed {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]domain.Feed, len(c.feeds))
	copy(res, c.feeds)
	return res
}

// ListSelected returns selected feeds in catalog order, selected ids without a feed are skipped
func (c *Catalog) ListSelected() []domain.Feed {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]domain.Feed, 0, len(c.selected))
	for _, f := range c.feeds {
		if _, ok := c.selected[f.ID]; ok {
			res = append(res, f)
		}
	}
	return res
}

// SelectedIDs returns the selection, including ids unknown to the catalog
func (c *Catalog) SelectedIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]string, len(c.order))
	copy(res, c.order)
	return res
}

// Find returns a feed by id
func (c *Catalog) Find(id string) (domain.Feed, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.index[id]
	if !ok {
		return domain.Feed{}, false
	}
	return c.feeds[idx], true
}

// ReplaceSelection sets the selection to exactly ids. Unknown ids are kept as selected.
// On a store error the previous selection stays in place.
func (c *Catalog) ReplaceSelection(ctx context.Context, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SetSelected(ctx, ids); err != nil {
			return fmt.Errorf("save selection: %w", err)
		}
	}
	c.setSelection(ids)
	return nil
}

// AddCustom appends a user feed with a generated id and selects it
func (c *Catalog) AddCustom(ctx context.Context, name, feedURL string) (domain.Feed, error) {
	name, feedURL = strings.TrimSpace(name), strings.TrimSpace(feedURL)
	if name == "" {
		return domain.Feed{}, &domain.ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if feedURL == "" {
		return domain.Feed{}, &domain.ValidationError{Field: "url", Reason: "must not be blank"}
	}
	u, err := url.Parse(feedURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Feed{}, &domain.ValidationError{Field: "url", Reason: "must be an absolute http or https url"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.newCustomID()
	feed := domain.Feed{ID: id, Name: name, URL: feedURL, Category: domain.CategoryCustom}
	if c.store != nil {
		rec := domain.FeedRecord{Feed: feed, Selected: true, CreatedAt: time.Now()}
		if err := c.store.CreateFeed(ctx, rec); err != nil {
			return domain.Feed{}, fmt.Errorf("save custom feed: %w", err)
		}
	}

	c.appendFeed(feed)
	if _, ok := c.selected[id]; !ok {
		c.selected[id] = struct{}{}
		c.order = append(c.order, id)
	}
	lgr.Printf("[INFO] custom feed %s added, %s", id, feedURL)
	return feed, nil
}

// newCustomID makes an id not used by any catalog entry, lock must be held
func (c *Catalog) newCustomID() string {
	for {
		id := customPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		if _, taken := c.index[id]; !taken {
			return id
		}
	}
}

// appendFeed adds a feed at the end, the first entry wins for duplicate ids
func (c *Catalog) appendFeed(f domain.Feed) {
	if _, ok := c.index[f.ID]; ok {
		return
	}
	c.index[f.ID] = len(c.feeds)
	c.feeds = append(c.feeds, f)
}

// setSelection replaces the selection, duplicates collapse to the first occurrence
func (c *Catalog) setSelection(ids []string) {
	c.selected = make(map[string]struct{}, len(ids))
	c.order = make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.selected[id]; ok {
			continue
		}
		c.selected[id] = struct{}{}
		c.order = append(c.order, id)
	}
}
