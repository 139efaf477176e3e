package feed

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newshub/pkg/domain"
)

// placeholders for items missing title or description
const (
	UntitledPlaceholder      = "(untitled)"
	NoDescriptionPlaceholder = "(no description)"
)

// guidNamespace scopes synthesized guids, must never change or every synthesized guid changes with it
var guidNamespace = uuid.MustParse("6f1c3a52-8d7e-4b0f-9a57-2f4c1e0b9d13")

// textPolicy strips all markup from descriptions, safe for concurrent use
var textPolicy = bluemonday.StrictPolicy()

// normalizeItem converts a parsed feed item into an article
func normalizeItem(src domain.Feed, item *gofeed.Item, observedAt time.Time) (article domain.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize item: %v", r)
		}
	}()

	if item == nil {
		return domain.Article{}, errors.New("empty item")
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = UntitledPlaceholder
	}

	desc := plainText(item.Description)
	if desc == "" {
		desc = plainText(item.Content)
	}
	if desc == "" {
		desc = NoDescriptionPlaceholder
	}

	var link *string
	if l := strings.TrimSpace(item.Link); l != "" {
		link = &l
	}

	var category *string
	if len(item.Categories) > 0 {
		if c := strings.TrimSpace(item.Categories[0]); c != "" {
			category = &c
		}
	}

	raw := item.Published
	if strings.TrimSpace(raw) == "" {
		raw = item.Updated
	}

	guid := strings.TrimSpace(item.GUID)
	if guid == "" {
		linkValue := ""
		if link != nil {
			linkValue = *link
		}
		guid = SyntheticGUID(src.ID, linkValue, title, raw)
	}

	return domain.Article{
		Title:       title,
		Description: desc,
		Link:        link,
		Category:    category,
		PubDateRaw:  raw,
		PublishedAt: ParseDate(raw),
		AddedAt:     observedAt.UTC(),
		GUID:        guid,
		SourceID:    src.ID,
		SourceName:  src.Name,
		SourceURL:   src.URL,
	}, nil
}

// SyntheticGUID builds a stable guid for items without one, from "feedID|link|title|rawDate".
// The same logical item of the same feed always gets the same guid.
func SyntheticGUID(feedID, link, title, rawDate string) string {
	base := feedID + "|" + link + "|" + title + "|" + rawDate
	return uuid.NewSHA1(guidNamespace, []byte(base)).String()
}

// plainText removes markup, decodes entities and collapses whitespace
func plainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	clean := html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}
