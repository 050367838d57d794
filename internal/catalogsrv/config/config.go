package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultConfigFile = "assetdashsrv.conf"

type ConfigParam struct {
	ServerPort     string   `toml:"server_port" env:"ASSETDASH_SERVER_PORT"`
	HandleCORS     bool     `toml:"handle_cors" env:"ASSETDASH_HANDLE_CORS"`
	AllowedOrigins []string `toml:"allowed_origins" env:"ASSETDASH_ALLOWED_ORIGINS" envSeparator:","`

	// CatalogSource is a file path or http(s) URL. Empty selects the bundled
	// catalog.
	CatalogSource        string `toml:"catalog_source" env:"ASSETDASH_CATALOG_SOURCE"`
	CatalogFetchRetries  uint   `toml:"catalog_fetch_retries" env:"ASSETDASH_CATALOG_FETCH_RETRIES"`
	CatalogFetchTimeoutS int    `toml:"catalog_fetch_timeout_seconds" env:"ASSETDASH_CATALOG_FETCH_TIMEOUT_SECONDS"`
	// CatalogRefreshIntervalS reloads the catalog periodically. Zero
	// reloads only on SIGHUP.
	CatalogRefreshIntervalS int `toml:"catalog_refresh_interval_seconds" env:"ASSETDASH_CATALOG_REFRESH_INTERVAL_SECONDS"`

	ViewCacheSize int `toml:"view_cache_size" env:"ASSETDASH_VIEW_CACHE_SIZE"`

	LiveEnabled        bool `toml:"live_enabled" env:"ASSETDASH_LIVE_ENABLED"`
	LiveMaxMessageSize int  `toml:"live_max_message_size" env:"ASSETDASH_LIVE_MAX_MESSAGE_SIZE"`
	LiveMaxSessions    int  `toml:"live_max_sessions" env:"ASSETDASH_LIVE_MAX_SESSIONS"`

	LogLevel  string `toml:"log_level" env:"ASSETDASH_LOG_LEVEL"`
	LogPretty bool   `toml:"log_pretty" env:"ASSETDASH_LOG_PRETTY"`
	LogRoutes bool   `toml:"log_routes" env:"ASSETDASH_LOG_ROUTES"`
}

func (c *ConfigParam) CatalogFetchTimeout() time.Duration {
	return time.Duration(c.CatalogFetchTimeoutS) * time.Second
}

func (c *ConfigParam) CatalogRefreshInterval() time.Duration {
	return time.Duration(c.CatalogRefreshIntervalS) * time.Second
}

func defaultConfig() *ConfigParam {
	return &ConfigParam{
		ServerPort:           "8194",
		HandleCORS:           true,
		AllowedOrigins:       []string{"http://localhost:5173", "http://localhost:8190"},
		CatalogFetchRetries:  5,
		CatalogFetchTimeoutS: 10,
		ViewCacheSize:        256,
		LiveEnabled:          true,
		LiveMaxMessageSize:   4096,
		LiveMaxSessions:      1024,
		LogLevel:             "info",
	}
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

// SetConfig replaces the active configuration. Used by tests.
func SetConfig(c *ConfigParam) {
	cfg = c
}

// LoadConfig reads filename over the defaults and then applies ASSETDASH_*
// environment overrides. A .env file is read first when ASSETDASH_ENV is
// "local".
func LoadConfig(filename string) error {
	cp := defaultConfig()
	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		if _, err := toml.Decode(string(content), cp); err != nil {
			return fmt.Errorf("error parsing config file: %v", err)
		}
	}
	if shouldLoadDotenv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error loading .env: %v", err)
		}
	}
	if err := env.Parse(cp); err != nil {
		return fmt.Errorf("error reading environment: %v", err)
	}
	if err := cp.validate(); err != nil {
		return err
	}
	cfg = cp
	return nil
}

func (c *ConfigParam) validate() error {
	if c.ServerPort == "" {
		return errors.New("server port not defined")
	}
	if c.ViewCacheSize < 0 {
		return errors.New("view cache size must not be negative")
	}
	if c.LiveMaxMessageSize < 0 || c.LiveMaxSessions < 0 {
		return errors.New("live session limits must not be negative")
	}
	if c.CatalogRefreshIntervalS < 0 {
		return errors.New("catalog refresh interval must not be negative")
	}
	if c.CatalogFetchTimeoutS <= 0 {
		return errors.New("catalog fetch timeout must be positive")
	}
	return nil
}

func shouldLoadDotenv() bool {
	return os.Getenv("ASSETDASH_ENV") == "local"
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}
