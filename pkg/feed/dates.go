package feed

import (
	"strings"
	"time"
)

// rfc1123Layouts covers RFC-1123 dates as seen in RSS, with and without weekday, one or two digit day
var rfc1123Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
}

// localLayouts are zone-less fallbacks, interpreted in the local zone
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses a feed date trying RFC-1123, then ISO-8601 instant, then local date-time
// layouts. Returns nil if nothing matches, the caller keeps the raw string for display.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range rfc1123Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return utc(t)
		}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return utc(t)
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return utc(t)
		}
	}

	return nil
}

func utc(t time.Time) *time.Time {
	t = t.UTC()
	return &t
}
