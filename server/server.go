// Package server provides the http surfaces: the store-side API server and the ingestor's internal server.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newshub/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/catalog.go -pkg mocks -skip-ensure -fmt goimports . Catalog
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

// maxBodySize limits request bodies, a batch of a large feed fits easily
const maxBodySize = 8 * 1024 * 1024

// refreshRoute responds after the whole fetch cycle
const refreshRoute = "POST /api/v1/refresh"

// Server represents the API server of the store process
type Server struct {
	config         ConfigProvider
	catalog        Catalog
	store          Store
	refresher      Refresher
	version        string
	debug          bool
	triggerTimeout time.Duration // limit of a refresher call

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Catalog provides feed catalog operations
type Catalog interface {
	ListAll() []domain.Feed
	ListSelected() []domain.Feed
	SelectedIDs() []string
	ReplaceSelection(ctx context.Context, ids []string) error
	AddCustom(ctx context.Context, name, feedURL string) (domain.Feed, error)
}

// Store provides ingestion store operations
type Store interface {
	Ingest(ctx context.Context, batch domain.Batch) (domain.IngestResult, error)
	MarkSeen(ctx context.Context, ids []int64) (int, error)
	ClearSeen(ctx context.Context) (int, error)
	RetainOnly(ctx context.Context, sourceIDs []string) (int, error)
	Stats(ctx context.Context, totalFeeds, selectedFeeds int) (domain.Stats, error)
	List(ctx context.Context, q domain.ListQuery) (domain.Page, error)
	ActiveSources(ctx context.Context) ([]domain.SourceInfo, error)
}

// Refresher asks the fetching side for a fetch cycle
type Refresher interface {
	Trigger(ctx context.Context) domain.TriggerResult
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetRefreshTimeout() time.Duration
}

// New initializes a new server instance
func New(cfg ConfigProvider, catalog Catalog, store Store, refresher Refresher, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		catalog:   catalog,
		store:     store,
		refresher: refresher,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	// a refresh cycle is limited by refresh timeout, the ingestor gets one server timeout more to answer
	_, timeout := cfg.GetServerConfig()
	s.triggerTimeout = cfg.GetRefreshTimeout() + timeout
	s.router.Use(writeDeadline(s.triggerTimeout+timeout, refreshRoute))
	setupMiddleware(s.router, version, debug)
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting api server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       timeout,
	}
	s.lock.Unlock()

	return serve(ctx, s.httpServer)
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feeds", s.feedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("GET /feeds/selected", s.selectedFeedsHandler)
		r.HandleFunc("PUT /feeds/selected", s.replaceSelectionHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("POST /news/seen", s.markSeenHandler)
		r.HandleFunc("POST /news/unseen", s.clearSeenHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)
	})

	// batch consumer of http transport
	s.router.Mount("/internal").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /batches", s.batchHandler)
	})
}

// setupMiddleware configures standard middleware, shared by both servers
func setupMiddleware(router *routegroup.Bundle, version string, debug bool) {
	router.Use(rest.AppInfo("newshub", "umputun", version))
	router.Use(rest.Ping)

	if debug {
		router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	router.Use(rest.Recoverer(lgr.Default()))
	router.Use(rest.Throttle(100))
	router.Use(rest.SizeLimit(maxBodySize))
}

// writeDeadline gives requests to routes ("METHOD /path") longer to respond than the server write timeout.
// Must be added before middlewares wrapping the ResponseWriter.
func writeDeadline(d time.Duration, routes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(routes, r.Method+" "+r.URL.Path) {
				if err := http.NewResponseController(w).SetWriteDeadline(time.Now().Add(d)); err != nil {
					lgr.Printf("[WARN] can't extend write deadline of %s: %v", r.URL.Path, err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// serve runs srv until ctx is canceled, then shuts it down
func serve(ctx context.Context, srv *http.Server) error {
	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server on %s", srv.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
