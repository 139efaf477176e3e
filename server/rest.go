package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newshub/pkg/domain"
	"github.com/umputun/newshub/pkg/transport"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

type categoryInfo struct {
	ID    domain.Category `json:"id"`
	Title string          `json:"title"`
}

// feedsHandler returns the whole catalog, the selection and category titles for grouping
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	categories := make([]categoryInfo, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		categories = append(categories, categoryInfo{ID: c, Title: c.Title()})
	}
	renderJSON(w, r, http.StatusOK, struct {
		All         []domain.Feed  `json:"all"`
		SelectedIDs []string       `json:"selectedIds"`
		Categories  []categoryInfo `json:"categories"`
	}{All: s.catalog.ListAll(), SelectedIDs: s.catalog.SelectedIDs(), Categories: categories})
}

// selectedFeedsHandler returns descriptors of selected feeds, queried by the ingestor
func (s *Server) selectedFeedsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.catalog.ListSelected())
}

// addFeedHandler adds a custom feed, selected right away
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	f, err := s.catalog.AddCustom(r.Context(), req.Name, req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		lgr.Printf("[ERROR] failed to add feed %q: %v", req.URL, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusCreated, f)
}

// replaceSelectionHandler replaces the selection and drops stored articles of unselected sources
func (s *Server) replaceSelectionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	if err := s.catalog.ReplaceSelection(r.Context(), req.IDs); err != nil {
		lgr.Printf("[ERROR] failed to replace selection: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	selected := s.catalog.SelectedIDs()
	removed, err := s.store.RetainOnly(r.Context(), selected)
	if err != nil {
		lgr.Printf("[ERROR] failed to remove unselected sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, struct {
		SelectedIDs []string `json:"selectedIds"`
		Removed     int      `json:"removed"`
	}{SelectedIDs: selected, Removed: removed})
}

// statsHandler returns the store state
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context(), len(s.catalog.ListAll()), len(s.catalog.SelectedIDs()))
	if err != nil {
		lgr.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// newsHandler returns a page of stored articles with the list of sources for filtering
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	q := domain.ListQuery{Sort: r.URL.Query().Get("sort"), SourceID: r.URL.Query().Get("source")}
	var err error
	if q.Page, err = intParam(r, "page"); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if q.PageSize, err = intParam(r, "size"); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	page, err := s.store.List(r.Context(), q)
	if err != nil {
		lgr.Printf("[ERROR] failed to list news: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	sources, err := s.store.ActiveSources(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, struct {
		domain.Page
		Sources []domain.SourceInfo `json:"sources"`
	}{Page: page, Sources: sources})
}

// markSeenHandler marks given articles as seen
func (s *Server) markSeenHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	n, err := s.store.MarkSeen(r.Context(), req.IDs)
	if err != nil {
		lgr.Printf("[ERROR] failed to mark seen: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]int{"marked": n})
}

// clearSeenHandler resets seen flags of all articles
func (s *Server) clearSeenHandler(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.ClearSeen(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to clear seen: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]int{"cleared": n})
}

// refreshHandler drops articles of unselected sources and asks the ingestor for a cycle.
// Responds 200 for a dispatched cycle, 409 while one is in progress and 502 if the ingestor failed.
// The response waits for the cycle, so the route has a longer write deadline than the server.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.RetainOnly(r.Context(), s.catalog.SelectedIDs()); err != nil {
		lgr.Printf("[ERROR] failed to remove unselected sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.triggerTimeout)
	defer cancel()
	res := s.refresher.Trigger(ctx)
	code := http.StatusOK
	switch res.Kind {
	case domain.TriggerWait:
		code = http.StatusConflict
	case domain.TriggerFailed:
		code = http.StatusBadGateway
	}
	renderJSON(w, r, code, res)
}

// batchHandler ingests one batch delivered by the http transport
func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, fmt.Errorf("read batch: %w", err), http.StatusBadRequest)
		return
	}
	batch, err := transport.Decode(body)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	res, err := s.store.Ingest(r.Context(), batch)
	if err != nil {
		lgr.Printf("[WARN] failed to ingest batch %s from %s: %v", batch.FetchID, batch.SourceID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// intParam returns a non-negative int query parameter, 0 if missing
func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, v)
	}
	return n, nil
}
