package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newshub/pkg/domain"
	"github.com/umputun/newshub/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc:   func() (string, time.Duration) { return listen, 30 * time.Second },
		GetRefreshTimeoutFunc: func() time.Duration { return 2 * time.Minute },
	}
}

func testCatalog() *mocks.CatalogMock {
	feeds := []domain.Feed{
		{ID: "lenta", Name: "Lenta", URL: "https://lenta.ru/rss", Category: domain.CategoryDomestic},
		{ID: "bbc", Name: "BBC", URL: "https://feeds.bbci.co.uk/news/rss.xml", Category: domain.CategoryInternational},
		{ID: "rt", Name: "RT", URL: "https://rt.com/rss", Category: domain.CategoryInternational},
	}
	return &mocks.CatalogMock{
		ListAllFunc:      func() []domain.Feed { return feeds },
		ListSelectedFunc: func() []domain.Feed { return feeds[:2] },
		SelectedIDsFunc:  func() []string { return []string{"lenta", "bbc", "ghost"} },
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

// request serves one request through the router with all middlewares
func request(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), testCatalog(), &mocks.StoreMock{}, &mocks.RefresherMock{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	port := freePort(t)
	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), testCatalog(), &mocks.StoreMock{}, &mocks.RefresherMock{}, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		return err == nil
	}, time.Second, 10*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "newshub", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Status(t *testing.T) {
	srv := New(testConfig(":8080"), testCatalog(), &mocks.StoreMock{}, &mocks.RefresherMock{}, "1.2.3", false)
	w := request(t, srv.router, http.MethodGet, "/api/v1/status", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
	assert.NotEmpty(t, resp["time"])
}

func TestServer_Feeds(t *testing.T) {
	srv := New(testConfig(":8080"), testCatalog(), &mocks.StoreMock{}, &mocks.RefresherMock{}, "test", false)

	t.Run("all", func(t *testing.T) {
		w := request(t, srv.router, http.MethodGet, "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			All         []domain.Feed  `json:"all"`
			SelectedIDs []string       `json:"selectedIds"`
			Categories  []categoryInfo `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.All, 3)
		assert.Equal(t, []string{"lenta", "bbc", "ghost"}, resp.SelectedIDs, "unknown ids reported as selected")
		require.Len(t, resp.Categories, 5)
		assert.Equal(t, categoryInfo{ID: domain.CategoryRegionalA, Title: "regional (A)"}, resp.Categories[2])
	})

	t.Run("selected", func(t *testing.T) {
		w := request(t, srv.router, http.MethodGet, "/api/v1/feeds/selected", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp []map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "lenta", resp[0]["id"])
		assert.Equal(t, "Lenta", resp[0]["name"])
		assert.Equal(t, "https://lenta.ru/rss", resp[0]["url"])
	})
}

func TestServer_AddFeed(t *testing.T) {
	cat := testCatalog()
	cat.AddCustomFunc = func(_ context.Context, name, feedURL string) (domain.Feed, error) {
		switch name {
		case "":
			return domain.Feed{}, &domain.ValidationError{Field: "name", Reason: "must not be blank"}
		case "broken":
			return domain.Feed{}, errors.New("db is gone")
		}
		return domain.Feed{ID: "custom_123456abcdef", Name: name, URL: feedURL, Category: domain.CategoryCustom}, nil
	}
	srv := New(testConfig(":8080"), cat, &mocks.StoreMock{}, &mocks.RefresherMock{}, "test", false)

	tbl := []struct {
		name, body string
		code       int
		contains   string
	}{
		{"ok", `{"name":"My","url":"https://my.example.com/rss"}`, http.StatusCreated, `"id":"custom_123456abcdef"`},
		{"validation", `{"name":"","url":"https://my.example.com/rss"}`, http.StatusBadRequest, "invalid name"},
		{"bad body", `{"name":`, http.StatusBadRequest, "invalid request body"},
		{"store error", `{"name":"broken","url":"https://x"}`, http.StatusInternalServerError, "db is gone"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, srv.router, http.MethodPost, "/api/v1/feeds", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
	assert.Len(t, cat.AddCustomCalls(), 3)

	t.Run("added feed logged by catalog only", func(t *testing.T) {
		var buf bytes.Buffer
		lgr.Setup(lgr.Out(&buf), lgr.Err(&buf))
		defer lgr.Setup()
		w := request(t, srv.router, http.MethodPost, "/api/v1/feeds", `{"name":"My","url":"https://my.example.com/rss"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, buf.String(), "custom feed")
	})
}

func TestServer_ReplaceSelection(t *testing.T) {
	cat := testCatalog()
	var selected []string
	cat.ReplaceSelectionFunc = func(_ context.Context, ids []string) error {
		if len(ids) == 1 && ids[0] == "fail" {
			return errors.New("can't save")
		}
		selected = ids
		return nil
	}
	cat.SelectedIDsFunc = func() []string { return selected }
	store := &mocks.StoreMock{RetainOnlyFunc: func(context.Context, []string) (int, error) { return 7, nil }}
	srv := New(testConfig(":8080"), cat, store, &mocks.RefresherMock{}, "test", false)

	w := request(t, srv.router, http.MethodPut, "/api/v1/feeds/selected", `{"ids":["bbc","ghost"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selectedIds":["bbc","ghost"],"removed":7}`, w.Body.String())
	require.Len(t, store.RetainOnlyCalls(), 1)
	assert.Equal(t, []string{"bbc", "ghost"}, store.RetainOnlyCalls()[0].SourceIDs)

	w = request(t, srv.router, http.MethodPut, "/api/v1/feeds/selected", `{"ids":["fail"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, store.RetainOnlyCalls(), 1, "store untouched when selection not saved")

	w = request(t, srv.router, http.MethodPut, "/api/v1/feeds/selected", `[`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Stats(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &mocks.StoreMock{StatsFunc: func(_ context.Context, total, selected int) (domain.Stats, error) {
		return domain.Stats{TotalStored: 2, TotalFeeds: total, SelectedFeeds: selected, UnseenCount: 1, LastFetchTime: &ts,
			CountsBySource: map[string]int{"BBC": 2}, RecentErrors: []string{"timeout"}}, nil
	}}
	srv := New(testConfig(":8080"), testCatalog(), store, &mocks.RefresherMock{}, "test", false)

	w := request(t, srv.router, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalStored":2,"totalFeeds":3,"selectedFeeds":3,"unseenCount":1,
		"lastFetchTime":"2026-03-01T12:00:00Z","countsBySource":{"BBC":2},"recentErrors":["timeout"]}`, w.Body.String())

	store.StatsFunc = func(context.Context, int, int) (domain.Stats, error) { return domain.Stats{}, errors.New("oops") }
	w = request(t, srv.router, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_News(t *testing.T) {
	store := &mocks.StoreMock{
		ListFunc: func(_ context.Context, q domain.ListQuery) (domain.Page, error) {
			return domain.Page{Items: []domain.StoredArticle{{ID: 1, Article: domain.Article{Title: "X", SourceID: "bbc"}}},
				Page: q.Page, TotalPages: 4, TotalItems: 4}, nil
		},
		ActiveSourcesFunc: func(context.Context) ([]domain.SourceInfo, error) {
			return []domain.SourceInfo{{ID: "bbc", Name: "BBC"}}, nil
		},
	}
	srv := New(testConfig(":8080"), testCatalog(), store, &mocks.RefresherMock{}, "test", false)

	w := request(t, srv.router, http.MethodGet, "/api/v1/news?page=2&size=1&sort=title&source=bbc", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.ListCalls(), 1)
	assert.Equal(t, domain.ListQuery{Sort: "title", SourceID: "bbc", Page: 2, PageSize: 1}, store.ListCalls()[0].Q)

	var resp struct {
		Items      []domain.StoredArticle `json:"items"`
		Page       int                    `json:"page"`
		TotalPages int                    `json:"totalPages"`
		TotalItems int                    `json:"totalItems"`
		Sources    []domain.SourceInfo    `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 4, resp.TotalPages)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "X", resp.Items[0].Title)
	assert.Equal(t, []domain.SourceInfo{{ID: "bbc", Name: "BBC"}}, resp.Sources)

	w = request(t, srv.router, http.MethodGet, "/api/v1/news", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ListQuery{}, store.ListCalls()[1].Q, "defaults applied by the store")

	for _, bad := range []string{"page=abc", "size=-1", "page=1.5"} {
		w = request(t, srv.router, http.MethodGet, "/api/v1/news?"+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
	assert.Len(t, store.ListCalls(), 2)
}

func TestServer_SeenFlags(t *testing.T) {
	store := &mocks.StoreMock{
		MarkSeenFunc:  func(_ context.Context, ids []int64) (int, error) { return len(ids), nil },
		ClearSeenFunc: func(context.Context) (int, error) { return 5, nil },
	}
	srv := New(testConfig(":8080"), testCatalog(), store, &mocks.RefresherMock{}, "test", false)

	w := request(t, srv.router, http.MethodPost, "/api/v1/news/seen", `{"ids":[1,2,3]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"marked":3}`, w.Body.String())
	assert.Equal(t, []int64{1, 2, 3}, store.MarkSeenCalls()[0].Ids)

	w = request(t, srv.router, http.MethodPost, "/api/v1/news/seen", `{"ids":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, srv.router, http.MethodPost, "/api/v1/news/unseen", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cleared":5}`, w.Body.String())
}

func TestServer_Refresh(t *testing.T) {
	tbl := []struct {
		name string
		res  domain.TriggerResult
		code int
	}{
		{"ok", domain.TriggerResult{Kind: domain.TriggerOK, FetchID: "f1", BatchCount: 2, Message: "refresh requested"}, http.StatusOK},
		{"wait", domain.TriggerResult{Kind: domain.TriggerWait, Message: "refresh already in progress"}, http.StatusConflict},
		{"error", domain.TriggerResult{Kind: domain.TriggerFailed, Message: "ingestor unavailable"}, http.StatusBadGateway},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			var order []string
			store := &mocks.StoreMock{RetainOnlyFunc: func(context.Context, []string) (int, error) {
				order = append(order, "retain")
				return 0, nil
			}}
			ref := &mocks.RefresherMock{TriggerFunc: func(context.Context) domain.TriggerResult {
				order = append(order, "trigger")
				return tt.res
			}}
			srv := New(testConfig(":8080"), testCatalog(), store, ref, "test", false)

			w := request(t, srv.router, http.MethodPost, "/api/v1/refresh", "")
			assert.Equal(t, tt.code, w.Code)
			var got domain.TriggerResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.res, got)
			assert.Equal(t, []string{"retain", "trigger"}, order)
			assert.Equal(t, []string{"lenta", "bbc", "ghost"}, store.RetainOnlyCalls()[0].SourceIDs)
		})
	}

	t.Run("retain failed", func(t *testing.T) {
		store := &mocks.StoreMock{RetainOnlyFunc: func(context.Context, []string) (int, error) { return 0, errors.New("locked") }}
		ref := &mocks.RefresherMock{}
		srv := New(testConfig(":8080"), testCatalog(), store, ref, "test", false)
		w := request(t, srv.router, http.MethodPost, "/api/v1/refresh", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, ref.TriggerCalls())
	})
}

func TestServer_RefreshLongerThanWriteTimeout(t *testing.T) {
	port := freePort(t)
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc:   func() (string, time.Duration) { return fmt.Sprintf("127.0.0.1:%d", port), time.Second },
		GetRefreshTimeoutFunc: func() time.Duration { return 5 * time.Second },
	}
	store := &mocks.StoreMock{RetainOnlyFunc: func(context.Context, []string) (int, error) { return 0, nil }}
	ref := &mocks.RefresherMock{TriggerFunc: func(ctx context.Context) domain.TriggerResult {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok, "trigger is limited")
		assert.WithinDuration(t, time.Now().Add(6*time.Second), deadline, time.Second)
		time.Sleep(1500 * time.Millisecond)
		return domain.TriggerResult{Kind: domain.TriggerOK, FetchID: "f1", BatchCount: 10, Message: "refresh requested"}
	}}
	srv := New(cfg, testCatalog(), store, ref, "test", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/refresh", "application/json", http.NoBody)
	require.NoError(t, err, "response not cut by write timeout")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.TriggerResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, domain.TriggerOK, got.Kind)
	assert.Equal(t, 10, got.BatchCount)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_Batches(t *testing.T) {
	store := &mocks.StoreMock{IngestFunc: func(_ context.Context, b domain.Batch) (domain.IngestResult, error) {
		if b.SourceID == "broken" {
			return domain.IngestResult{}, errors.New("tx failed")
		}
		if !b.OK() {
			return domain.IngestResult{Added: 0, Errors: []string{b.ErrorText()}}, nil
		}
		return domain.IngestResult{Added: len(b.Items), Errors: []string{}}, nil
	}}
	srv := New(testConfig(":8080"), testCatalog(), store, &mocks.RefresherMock{}, "test", false)

	tbl := []struct {
		name, body string
		code       int
		resp       string
	}{
		{"ok", `{"fetchId":"f1","fetchedAt":"2026-03-01T12:00:00Z","sourceId":"bbc","sourceName":"BBC","sourceUrl":"u",
			"items":[{"title":"X","description":"d","link":null,"category":null,"pubDateRaw":"","publishedAt":null,
			"addedAt":"2026-03-01T12:00:00Z","guid":"g","sourceId":"bbc","sourceName":"BBC","sourceUrl":"u"}],"error":null}`,
			http.StatusOK, `{"added":1,"errors":[]}`},
		{"error batch", `{"fetchId":"f1","sourceId":"rt","items":[],"error":"timeout"}`,
			http.StatusOK, `{"added":0,"errors":["timeout"]}`},
		{"ingest failure", `{"fetchId":"f1","sourceId":"broken","items":[],"error":null}`,
			http.StatusInternalServerError, `{"error":"tx failed"}`},
		{"no source", `{"fetchId":"f1","items":[]}`, http.StatusBadRequest, ""},
		{"garbage", `not json`, http.StatusBadRequest, ""},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, srv.router, http.MethodPost, "/internal/batches", tt.body)
			assert.Equal(t, tt.code, w.Code)
			if tt.resp != "" {
				assert.JSONEq(t, tt.resp, w.Body.String())
			}
		})
	}
	assert.Len(t, store.IngestCalls(), 3)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := New(testConfig(":8080"), testCatalog(), &mocks.StoreMock{}, &mocks.RefresherMock{}, "test", false)
	w := request(t, srv.router, http.MethodGet, "/internal/batches", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
