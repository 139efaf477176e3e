package domain

import (
	"errors"
	"fmt"
	"time"
)

// Category groups feeds in the catalog
type Category string

// feed categories
const (
	CategoryDomestic      Category = "domestic"
	CategoryInternational Category = "international"
	CategoryRegionalA     Category = "regional-a"
	CategoryRegionalB     Category = "regional-b"
	CategoryCustom        Category = "custom"
)

// Categories returns all known categories in display order
func Categories() []Category {
	return []Category{CategoryDomestic, CategoryInternational, CategoryRegionalA, CategoryRegionalB, CategoryCustom}
}

// Title returns a human-readable category name
func (c Category) Title() string {
	switch c {
	case CategoryDomestic:
		return "domestic"
	case CategoryInternational:
		return "international"
	case CategoryRegionalA:
		return "regional (A)"
	case CategoryRegionalB:
		return "regional (B)"
	case CategoryCustom:
		return "custom"
	default:
		return string(c)
	}
}

// Feed describes a news feed source. Immutable once created.
type Feed struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Category Category `json:"category,omitempty"`
}

// FeedRecord is a persisted catalog entry with its selection flag
type FeedRecord struct {
	Feed
	Selected  bool
	CreatedAt time.Time
}

// ErrValidation is the sentinel for rejected catalog input
var ErrValidation = errors.New("validation error")

// ValidationError reports a bad input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error { return ErrValidation }
