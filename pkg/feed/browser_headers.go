package feed

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains Accept-Language values, the seed catalog mixes russian and english feeds
var acceptLanguages = []string{
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"en-US,en;q=0.9,ru;q=0.8",
	"en-GB,en;q=0.9",
	"ru,en;q=0.9",
}

// addBrowserHeaders adds browser-like headers, some publishers reject obvious bots
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation
	req.Header.Set("Connection", "keep-alive")
}
