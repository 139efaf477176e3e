package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newshub/pkg/catalog"
	"github.com/umputun/newshub/pkg/config"
	"github.com/umputun/newshub/pkg/domain"
	"github.com/umputun/newshub/pkg/feed"
	"github.com/umputun/newshub/pkg/ingest"
	"github.com/umputun/newshub/pkg/repository"
	"github.com/umputun/newshub/pkg/scheduler"
	"github.com/umputun/newshub/pkg/transport"
	"github.com/umputun/newshub/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// channel transport buffer, a few cycles of the default catalog
const channelBufferSize = 64

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)
	lgr.Printf("[INFO] starting newshub version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires the store process and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if secrets := dbSecrets(cfg.Database.DSN); len(secrets) > 0 {
		setupLog(opts.Debug, secrets...)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	seeds, selected := cfg.SeedFeeds(), cfg.Catalog.DefaultSelected
	if seeds == nil {
		seeds = catalog.DefaultSeeds()
	}
	if selected == nil {
		selected = catalog.DefaultSelected
	}
	cat, err := catalog.New(ctx, repos.Feed, seeds, selected)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	store := ingest.NewService(ctx, repos.Article, ingest.Params{
		MaxArticles: cfg.Store.MaxArticles,
		MaxErrors:   cfg.Store.MaxErrors,
		Settings:    repos.Setting,
	})
	handler := func(ctx context.Context, batch domain.Batch) error {
		_, err := store.Ingest(ctx, batch)
		return err
	}

	var refresher server.Refresher
	consumerErr := make(chan error, 1) // kafka consumer failure, closed when the consumer is done
	switch cfg.Transport.Type {
	case config.TransportChannel:
		close(consumerErr)
		stop, ing := startLocalIngestor(ctx, cfg, cat, handler)
		defer stop()
		refresher = ing
	case config.TransportKafka:
		consumer, err := transport.NewKafkaConsumer(transport.KafkaParams{
			Brokers: cfg.Transport.Kafka.Brokers,
			Topic:   cfg.Transport.Kafka.Topic,
			GroupID: cfg.Transport.Kafka.Group,
			Retries: cfg.Transport.Kafka.Retries,
		})
		if err != nil {
			return fmt.Errorf("failed to make kafka consumer: %w", err)
		}
		go func() {
			defer close(consumerErr)
			if err := consumer.Run(ctx, handler); err != nil && ctx.Err() == nil {
				lgr.Printf("[ERROR] kafka consumer failed, stopping: %v", err)
				consumerErr <- err
				cancel() // no ingestion, stop the api server too
			}
		}()
		defer func() {
			if err := consumer.Close(); err != nil {
				lgr.Printf("[WARN] %v", err)
			}
		}()
		refresher = scheduler.NewRefreshClient(cfg.API.IngestorURL, cfg.API.RefreshTimeout+cfg.Server.Timeout)
	default: // batches arrive on /internal/batches
		close(consumerErr)
		refresher = scheduler.NewRefreshClient(cfg.API.IngestorURL, cfg.API.RefreshTimeout+cfg.Server.Timeout)
	}

	lgr.Printf("[INFO] catalog has %d feeds, %d selected, transport %s",
		len(cat.ListAll()), len(cat.SelectedIDs()), cfg.Transport.Type)

	srv := server.New(cfg, cat, store, refresher, revision, opts.Debug)
	srvErr := srv.Run(ctx)
	cancel()
	if err := <-consumerErr; err != nil {
		return fmt.Errorf("kafka consumer failed: %w", err)
	}
	if srvErr != nil {
		return fmt.Errorf("server failed: %w", srvErr)
	}
	return nil
}

// startLocalIngestor runs fetching in this process, batches go through an in-process channel.
// The returned stop waits for started cycles and delivers queued batches.
func startLocalIngestor(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, handler transport.Handler) (stop func(), ing *scheduler.Ingestor) {
	ch := transport.NewChannel(channelBufferSize, 3)
	ing = scheduler.NewIngestor(scheduler.IngestorParams{
		Feeds: scheduler.FeedSourceFunc(func(context.Context) ([]domain.Feed, error) { return cat.ListSelected(), nil }),
		Fetcher: feed.NewFetcher(feed.FetcherParams{
			Timeout:    cfg.Fetch.Timeout,
			MaxWorkers: cfg.Fetch.MaxWorkers,
			UserAgent:  cfg.Fetch.UserAgent,
		}),
		Publisher: ch,
	})

	// consumer outlives ctx to drain batches of the last cycle
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := ch.Run(context.WithoutCancel(ctx), handler); err != nil {
			lgr.Printf("[WARN] channel consumer stopped: %v", err)
		}
	}()

	sched := scheduler.NewScheduler(ing, scheduler.Config{Enabled: cfg.Schedule.Enabled, Interval: cfg.Schedule.Interval})
	sched.Start(ctx)

	return func() {
		sched.Stop()
		ing.Wait()
		_ = ch.Close()
		<-consumerDone
	}, ing
}

// dbSecrets returns the password of a url-style dsn, to be hidden in logs
func dbSecrets(dsn string) []string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return nil
	}
	if pass, ok := u.User.Password(); ok && pass != "" {
		return []string{pass}
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
