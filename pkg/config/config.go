package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/newshub/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// transport types, mirror pkg/transport
const (
	TransportChannel = "channel"
	TransportHTTP    = "http"
	TransportKafka   = "kafka"
)

// Config holds the application configuration, shared by the store and the ingestor processes
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database  DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Store     StoreConfig     `yaml:"store" json:"store" jsonschema:"description=Ingestion store limits"`
	Catalog   CatalogConfig   `yaml:"catalog" json:"catalog" jsonschema:"description=Feed catalog configuration"`
	Fetch     FetchConfig     `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Schedule  ScheduleConfig  `yaml:"schedule" json:"schedule" jsonschema:"description=Periodic refresh configuration"`
	Transport TransportConfig `yaml:"transport" json:"transport" jsonschema:"description=Batch transport between ingestor and store"`
	API       APIConfig       `yaml:"api" json:"api" jsonschema:"description=Addresses the two processes use to reach each other"`
}

// ServerConfig holds http listeners
type ServerConfig struct {
	Listen         string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=API server listen address"`
	IngestorListen string        `yaml:"ingestor_listen" json:"ingestor_listen" jsonschema:"default=:8081,description=Ingestor server listen address"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver" json:"driver" jsonschema:"default=sqlite,enum=sqlite,enum=postgres,description=Database driver"`
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newshub.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// StoreConfig holds ingestion store bounds
type StoreConfig struct {
	MaxArticles int `yaml:"max_articles" json:"max_articles" jsonschema:"default=500,minimum=1,description=Maximum number of stored articles"`
	MaxErrors   int `yaml:"max_errors" json:"max_errors" jsonschema:"default=25,minimum=1,description=Number of recent fetch errors kept"`
}

// CatalogConfig holds the initial catalog. Feeds replace the built-in seed list when set.
type CatalogConfig struct {
	DefaultSelected []string     `yaml:"default_selected" json:"default_selected" jsonschema:"description=Feed ids selected on first start"`
	Feeds           []FeedConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Seed feeds, built-in list if empty"`
}

// FeedConfig is a seed feed
type FeedConfig struct {
	ID       string `yaml:"id" json:"id" jsonschema:"required,description=Feed id"`
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Display name"`
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Category string `yaml:"category" json:"category" jsonschema:"default=custom,enum=domestic,enum=international,enum=regional-a,enum=regional-b,enum=custom,description=Feed category"`
}

// FetchConfig holds fetcher settings
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-feed fetch deadline"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Feeds fetched concurrently"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent override, browser-like by default"`
}

// ScheduleConfig holds periodic refresh settings
type ScheduleConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable periodic refresh"`
	Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=300s,description=Refresh interval"`
}

// TransportConfig selects and configures the batch transport
type TransportConfig struct {
	Type  string               `yaml:"type" json:"type" jsonschema:"default=channel,enum=channel,enum=http,enum=kafka,description=Batch transport"`
	HTTP  HTTPTransportConfig  `yaml:"http" json:"http" jsonschema:"description=HTTP transport settings"`
	Kafka KafkaTransportConfig `yaml:"kafka" json:"kafka" jsonschema:"description=Kafka transport settings"`
}

// HTTPTransportConfig holds http publisher settings
type HTTPTransportConfig struct {
	StoreURL string        `yaml:"store_url" json:"store_url" jsonschema:"default=http://localhost:8080,description=Base URL of the store process"`
	Retries  int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Delivery attempts per batch"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
}

// KafkaTransportConfig holds kafka settings
type KafkaTransportConfig struct {
	Brokers []string `yaml:"brokers" json:"brokers" jsonschema:"description=Kafka bootstrap brokers"`
	Topic   string   `yaml:"topic" json:"topic" jsonschema:"default=newshub.news,description=Topic carrying batches"`
	Group   string   `yaml:"group" json:"group" jsonschema:"default=newshub-api,description=Consumer group of the store process"`
	Retries int      `yaml:"retries" json:"retries" jsonschema:"default=5,minimum=1,description=Handling attempts per message"`
}

// APIConfig holds cross-process addresses
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Store API base URL used by the ingestor"`
	IngestorURL    string        `yaml:"ingestor_url" json:"ingestor_url" jsonschema:"default=http://localhost:8081,description=Ingestor base URL used by the store"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout" json:"refresh_timeout" jsonschema:"default=2m,description=Longest on-demand refresh cycle, refresh requests are answered after it"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse makes configuration from YAML data, expanding environment variables and setting defaults
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.IngestorListen == "" {
		c.Server.IngestorListen = ":8081"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "file:newshub.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// store
	if c.Store.MaxArticles == 0 {
		c.Store.MaxArticles = 500
	}
	if c.Store.MaxErrors == 0 {
		c.Store.MaxErrors = 25
	}

	// catalog seeds
	for i := range c.Catalog.Feeds {
		if c.Catalog.Feeds[i].Category == "" {
			c.Catalog.Feeds[i].Category = string(domain.CategoryCustom)
		}
	}

	// fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 15 * time.Second
	}
	if c.Fetch.MaxWorkers == 0 {
		c.Fetch.MaxWorkers = 5
	}

	// schedule
	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = 300 * time.Second
	}

	// transport
	if c.Transport.Type == "" {
		c.Transport.Type = TransportChannel
	}
	if c.Transport.HTTP.StoreURL == "" {
		c.Transport.HTTP.StoreURL = "http://localhost:8080"
	}
	if c.Transport.HTTP.Retries == 0 {
		c.Transport.HTTP.Retries = 3
	}
	if c.Transport.HTTP.Timeout == 0 {
		c.Transport.HTTP.Timeout = 10 * time.Second
	}
	if c.Transport.Kafka.Topic == "" {
		c.Transport.Kafka.Topic = "newshub.news"
	}
	if c.Transport.Kafka.Group == "" {
		c.Transport.Kafka.Group = "newshub-api"
	}
	if c.Transport.Kafka.Retries == 0 {
		c.Transport.Kafka.Retries = 5
	}

	// api
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080"
	}
	if c.API.IngestorURL == "" {
		c.API.IngestorURL = "http://localhost:8081"
	}
	if c.API.RefreshTimeout == 0 {
		c.API.RefreshTimeout = 2 * time.Minute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for %s", cfg.Database.Driver)
	}

	if cfg.Store.MaxArticles < 1 {
		return fmt.Errorf("store.max_articles must be at least 1")
	}
	if cfg.Store.MaxErrors < 1 {
		return fmt.Errorf("store.max_errors must be at least 1")
	}

	if err := validateFeeds(cfg.Catalog.Feeds); err != nil {
		return err
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch.max_workers must be at least 1")
	}

	if cfg.Schedule.Enabled && cfg.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule interval must be at least 1 second")
	}

	switch cfg.Transport.Type {
	case TransportChannel, TransportHTTP:
	case TransportKafka:
		if len(cfg.Transport.Kafka.Brokers) == 0 {
			return fmt.Errorf("transport.kafka.brokers is required for kafka transport")
		}
	default:
		return fmt.Errorf("transport.type must be channel, http or kafka, got %q", cfg.Transport.Type)
	}

	return nil
}

func validateFeeds(feeds []FeedConfig) error {
	seen := map[string]bool{}
	for i, f := range feeds {
		if strings.TrimSpace(f.ID) == "" || strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("catalog.feeds[%d]: id, name and url are required", i)
		}
		if seen[f.ID] {
			return fmt.Errorf("catalog.feeds[%d]: duplicate id %q", i, f.ID)
		}
		seen[f.ID] = true
		if u, err := url.Parse(f.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("catalog.feeds[%d]: invalid url %q", i, f.URL)
		}
		if !slices.Contains(domain.Categories(), domain.Category(f.Category)) {
			return fmt.Errorf("catalog.feeds[%d]: unknown category %q", i, f.Category)
		}
	}
	return nil
}

// SeedFeeds returns configured seed feeds as domain feeds, nil if none configured
func (c *Config) SeedFeeds() []domain.Feed {
	if len(c.Catalog.Feeds) == 0 {
		return nil
	}
	res := make([]domain.Feed, 0, len(c.Catalog.Feeds))
	for _, f := range c.Catalog.Feeds {
		res = append(res, domain.Feed{ID: f.ID, Name: f.Name, URL: f.URL, Category: domain.Category(f.Category)})
	}
	return res
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetRefreshTimeout returns the limit of an on-demand refresh cycle
func (c *Config) GetRefreshTimeout() time.Duration {
	return c.API.RefreshTimeout
}
