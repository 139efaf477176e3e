package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newshub/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner runs one fetch cycle
type Runner interface {
	RefreshOnce(ctx context.Context) domain.RefreshRun
}

// internalRefreshRoute responds after fetching all selected feeds
const internalRefreshRoute = "POST /internal/refresh"

// IngestorServer serves on-demand refresh requests of the ingestor process
type IngestorServer struct {
	listen         string
	timeout        time.Duration
	refreshTimeout time.Duration
	runner         Runner
	version        string

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// NewIngestorServer makes an ingestor server listening on listen.
// An on-demand cycle is limited by refreshTimeout and answered within one more timeout.
func NewIngestorServer(listen string, timeout, refreshTimeout time.Duration, runner Runner, version string, debug bool) *IngestorServer {
	s := &IngestorServer{
		listen:         listen,
		timeout:        timeout,
		refreshTimeout: refreshTimeout,
		runner:         runner,
		version:        version,
		router:         routegroup.New(http.NewServeMux()),
	}

	s.router.Use(writeDeadline(refreshTimeout+timeout, internalRefreshRoute))
	setupMiddleware(s.router, version, debug)
	s.router.HandleFunc("GET /api/v1/status", s.statusHandler)
	s.router.HandleFunc(internalRefreshRoute, s.refreshHandler)
	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *IngestorServer) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting ingestor server on %s", s.listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.timeout,
		WriteTimeout:      s.timeout,
		IdleTimeout:       s.timeout,
	}
	s.lock.Unlock()

	return serve(ctx, s.httpServer)
}

func (s *IngestorServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "version": s.version, "time": time.Now().UTC()})
}

// refreshHandler runs a cycle and responds after fetching, publishing continues in background.
// Feeds not fetched within refresh timeout are reported as failed batches.
func (s *IngestorServer) refreshHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.refreshTimeout)
	defer cancel()
	run := s.runner.RefreshOnce(ctx)
	renderJSON(w, r, http.StatusOK, run)
}
