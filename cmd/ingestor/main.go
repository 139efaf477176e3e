package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newshub/pkg/config"
	"github.com/umputun/newshub/pkg/feed"
	"github.com/umputun/newshub/pkg/scheduler"
	"github.com/umputun/newshub/pkg/transport"
	"github.com/umputun/newshub/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.ingestor_listen"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

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
	lgr.Printf("[INFO] starting newshub ingestor version %s", revision)

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

// run wires the fetching process and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Listen != "" {
		cfg.Server.IngestorListen = opts.Listen
	}

	publisher, err := makePublisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to make publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			lgr.Printf("[WARN] failed to close publisher: %v", err)
		}
	}()

	ing := scheduler.NewIngestor(scheduler.IngestorParams{
		Feeds: scheduler.NewFeedsClient(cfg.API.BaseURL, cfg.Transport.HTTP.Timeout, cfg.Transport.HTTP.Retries),
		Fetcher: feed.NewFetcher(feed.FetcherParams{
			Timeout:    cfg.Fetch.Timeout,
			MaxWorkers: cfg.Fetch.MaxWorkers,
			UserAgent:  cfg.Fetch.UserAgent,
		}),
		Publisher: publisher,
	})
	defer ing.Wait()

	sched := scheduler.NewScheduler(ing, scheduler.Config{Enabled: cfg.Schedule.Enabled, Interval: cfg.Schedule.Interval})
	sched.Start(ctx)
	defer sched.Stop()

	lgr.Printf("[INFO] publishing to %s transport, store api %s", cfg.Transport.Type, cfg.API.BaseURL)
	srv := server.NewIngestorServer(cfg.Server.IngestorListen, cfg.Server.Timeout, cfg.API.RefreshTimeout, ing, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makePublisher returns publisher for the configured transport. Channel transport lives inside the store process.
func makePublisher(cfg *config.Config) (transport.Publisher, error) {
	switch cfg.Transport.Type {
	case config.TransportHTTP:
		return transport.NewHTTPPublisher(transport.HTTPParams{
			StoreURL: cfg.Transport.HTTP.StoreURL,
			Retries:  cfg.Transport.HTTP.Retries,
			Timeout:  cfg.Transport.HTTP.Timeout,
		}), nil
	case config.TransportKafka:
		return transport.NewKafkaPublisher(transport.KafkaParams{
			Brokers: cfg.Transport.Kafka.Brokers,
			Topic:   cfg.Transport.Kafka.Topic,
		})
	case config.TransportChannel:
		return nil, errors.New("channel transport runs in the newshub process, set transport.type to http or kafka")
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport.Type)
	}
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
