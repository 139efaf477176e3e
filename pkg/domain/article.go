package domain

import "time"

// Article is a normalized feed item, produced by the fetcher and carried in a Batch
type Article struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        *string    `json:"link"`
	Category    *string    `json:"category"`
	PubDateRaw  string     `json:"pubDateRaw"`
	PublishedAt *time.Time `json:"publishedAt"`
	AddedAt     time.Time  `json:"addedAt"`
	GUID        string     `json:"guid"`
	SourceID    string     `json:"sourceId"`
	SourceName  string     `json:"sourceName"`
	SourceURL   string     `json:"sourceUrl"`
}

// LinkValue returns the link or an empty string for nil
func (a Article) LinkValue() string {
	if a.Link == nil {
		return ""
	}
	return *a.Link
}

// StoredArticle is an article accepted by the ingestion store
type StoredArticle struct {
	Article
	ID          int64  `json:"id"`
	Fingerprint string `json:"fingerprint"`
	Seen        bool   `json:"seen"`
}

// sort modes for stored article listings
const (
	SortDate   = "date"
	SortTitle  = "title"
	SortSource = "source"
)

// ListQuery defines paging and ordering for stored articles
type ListQuery struct {
	Sort     string // SortDate (default), SortTitle or SortSource
	SourceID string
	Page     int // 1-based
	PageSize int
}

// Page is one page of stored articles
type Page struct {
	Items      []StoredArticle `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
}

// SourceInfo is a distinct source present in the store
type SourceInfo struct {
	ID   string `json:"id" db:"source_id"`
	Name string `json:"name" db:"source_name"`
}

// Stats is the externally visible state of the ingestion store
type Stats struct {
	TotalStored    int            `json:"totalStored"`
	TotalFeeds     int            `json:"totalFeeds"`
	SelectedFeeds  int            `json:"selectedFeeds"`
	UnseenCount    int            `json:"unseenCount"`
	LastFetchTime  *time.Time     `json:"lastFetchTime"`
	CountsBySource map[string]int `json:"countsBySource"`
	RecentErrors   []string       `json:"recentErrors"`
}
