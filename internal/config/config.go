package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/2beens/prtracker/internal/router"
)

const (
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageDisabled = "disabled"
)

type Config struct {
	Environment string `toml:"environment"`
	// personal records API
	BaseURL               string `toml:"base_url"`
	IndexPath             string `toml:"index_path"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	// credential storage
	Storage       string `toml:"storage"`
	StoragePath   string `toml:"storage_path"`
	RedisHost     string `toml:"redis_host"`
	RedisPort     string `toml:"redis_port"`
	RedisPassword string `toml:"-"`
	// output
	ChartsDir string `toml:"charts_dir"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// telemetry
	HoneycombEnabled bool   `toml:"honeycomb_enabled"`
	PushgatewayURL   string `toml:"pushgateway_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the section of env from the TOML file at path, then applies defaults
// and the PRTRACKER_SERVER, PRTRACKER_REDIS_PASS and HONEYCOMB_ENABLED env vars.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)

	if server := os.Getenv("PRTRACKER_SERVER"); server != "" {
		cfg.BaseURL = server
	}
	cfg.RedisPassword = os.Getenv("PRTRACKER_REDIS_PASS")
	if os.Getenv("HONEYCOMB_ENABLED") == "true" {
		cfg.HoneycombEnabled = true
	}

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.IndexPath == "" {
		c.IndexPath = router.IndexPage
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 10
	}
	if c.Storage == "" {
		c.Storage = StorageSQLite
	}
	if c.StoragePath == "" {
		c.StoragePath = "./prtracker.db"
	}
	if c.RedisHost == "" {
		c.RedisHost = "localhost"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.ChartsDir == "" {
		c.ChartsDir = "./charts"
	}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url not set, use the config file or PRTRACKER_SERVER")
	}
	switch c.Storage {
	case StorageSQLite, StorageMemory, StorageRedis, StorageDisabled:
	default:
		return fmt.Errorf("unknown storage: %s", c.Storage)
	}
	// login lands there, so it has to be a page the index controller serves
	if c.IndexPath != router.IndexPage && c.IndexPath != router.LegacyIndexPage {
		return fmt.Errorf("index_path must be %s or %s: %s", router.IndexPage, router.LegacyIndexPage, c.IndexPath)
	}
	return nil
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
