// Package dedup computes the content-addressed key used to deduplicate articles
// across fetches and restarts.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/umputun/newshub/pkg/domain"
)

// Fingerprint returns hex sha256 of "sourceId|guid|link|title|pubDateRaw", nil fields as empty strings
func Fingerprint(a domain.Article) string {
	key := strings.Join([]string{a.SourceID, a.GUID, a.LinkValue(), a.Title, a.PubDateRaw}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
