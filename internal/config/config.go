package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/formatdiff/pkg/database"
	"github.com/JaimeStill/formatdiff/pkg/storage"
)

const (
	DotEnvFile           = ".env"
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvFormatdiffEnv             = "FORMATDIFF_ENV"
	EnvFormatdiffLogLevel        = "FORMATDIFF_LOG_LEVEL"
	EnvFormatdiffShutdownTimeout = "FORMATDIFF_SHUTDOWN_TIMEOUT"
	EnvFormatdiffVersion         = "FORMATDIFF_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "FORMATDIFF_DB_HOST",
	Port:            "FORMATDIFF_DB_PORT",
	Name:            "FORMATDIFF_DB_NAME",
	User:            "FORMATDIFF_DB_USER",
	Password:        "FORMATDIFF_DB_PASSWORD",
	SSLMode:         "FORMATDIFF_DB_SSL_MODE",
	MaxOpenConns:    "FORMATDIFF_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "FORMATDIFF_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "FORMATDIFF_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "FORMATDIFF_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "FORMATDIFF_STORAGE_CONTAINER_NAME",
	ConnectionString: "FORMATDIFF_STORAGE_CONNECTION_STRING",
	AccountURL:       "FORMATDIFF_STORAGE_ACCOUNT_URL",
}

// Config is the root configuration for the formatdiff service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Compare         CompareConfig   `toml:"compare"`
	LogLevel        string          `toml:"log_level"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the FORMATDIFF_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvFormatdiffEnv); env != "" {
		return env
	}
	return "local"
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration. Variables from a .env file are added to
// the process environment first without replacing values already set.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env from the working directory when it exists.
func LoadDotEnv() error {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", DotEnvFile, err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Compare.Merge(&overlay.Compare)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Compare.Finalize(); err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFormatdiffLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvFormatdiffShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvFormatdiffVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvFormatdiffEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
