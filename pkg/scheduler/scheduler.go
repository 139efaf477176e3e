// Package scheduler triggers fetch cycles, periodically or on demand.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newshub/pkg/domain"
)

// Runner runs one fetch cycle
type Runner interface {
	RefreshOnce(ctx context.Context) domain.RefreshRun
}

// Config holds scheduler configuration
type Config struct {
	Enabled  bool
	Interval time.Duration // 300s if 0
}

// Scheduler runs fetch cycles on a fixed interval. Each tick is independent of the previous outcome.
type Scheduler struct {
	runner   Runner
	enabled  bool
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(runner Runner, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 300 * time.Second
	}
	return &Scheduler{runner: runner, enabled: cfg.Enabled, interval: cfg.Interval}
}

// Start begins the periodic refresh, does nothing if disabled
func (s *Scheduler) Start(ctx context.Context) {
	if !s.enabled {
		lgr.Printf("[INFO] scheduler disabled, refresh on demand only")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.refreshWorker(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	lgr.Printf("[INFO] stopping scheduler...")
	s.cancel()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// refreshWorker runs a cycle right away and then on every tick
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	run := s.runner.RefreshOnce(ctx)
	switch {
	case run.Busy:
		lgr.Printf("[DEBUG] scheduled refresh skipped, cycle in progress")
	case !run.OK():
		lgr.Printf("[WARN] scheduled refresh %s failed: %s", run.FetchID, *run.Error)
	default:
		lgr.Printf("[DEBUG] scheduled refresh %s dispatched %d batches", run.FetchID, run.BatchCount)
	}
}
