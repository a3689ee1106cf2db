package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// EnvPrefix is the prefix for every environment variable read by New.
const EnvPrefix = "CONTENT_ENGINE"

// Config holds the configuration for the content engine.
// Environment variables are parsed with the CONTENT_ENGINE_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived when "auto": local -> sqlite, cloud-dev/cloud -> postgres
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	DataDir     string `envconfig:"DATA_DIR" default:".content-engine"`

	// Embedding provider
	EmbedProvider       string `envconfig:"EMBED_PROVIDER" default:"ollama"`
	EmbedModel          string `envconfig:"EMBED_MODEL" default:"nomic-embed-text"`
	OllamaURL           string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	EmbedDimension      int    `envconfig:"EMBED_DIMENSION" default:"0"`
	EmbedTimeoutSeconds int    `envconfig:"EMBED_TIMEOUT_SECONDS" default:"30"`

	// Search defaults
	SearchLimit     int     `envconfig:"SEARCH_LIMIT" default:"10"`
	SearchThreshold float64 `envconfig:"SEARCH_THRESHOLD" default:"0.7"`

	// Version allocation retries before a ConcurrencyError surfaces
	VersionRetryAttempts int `envconfig:"VERSION_RETRY_ATTEMPTS" default:"5"`

	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver and SQLitePath when unset.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true, "memory": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "content-engine.db")
	}

	switch c.EmbedProvider {
	case "ollama", "hashing":
	default:
		return fmt.Errorf("unsupported EMBED_PROVIDER: %s", c.EmbedProvider)
	}
	if c.EmbedProvider == "hashing" && c.EmbedDimension <= 0 {
		c.EmbedDimension = 256
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		return fmt.Errorf("SEARCH_THRESHOLD must be within [0,1], got %v", c.SearchThreshold)
	}
	if c.VersionRetryAttempts <= 0 {
		c.VersionRetryAttempts = 5
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: CONTENT_ENGINE_POSTGRES_DSN, CONTENT_ENGINE_EMBED_MODEL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Str("embed_provider", cfg.EmbedProvider).
		Str("embed_model", cfg.EmbedModel).
		Int("embed_dimension", cfg.EmbedDimension).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Str("sqlite_path", cfg.SQLitePath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates an in-memory config with the deterministic hashing embedder.
func NewForTesting() *Config {
	cfg := &Config{
		BuildTarget:               "local",
		DBDriver:                  "memory",
		Environment:               EnvTesting,
		LogLevel:                  "debug",
		DataDir:                   ".content-engine",
		EmbedProvider:             "hashing",
		EmbedModel:                "hashing",
		EmbedDimension:            64,
		EmbedTimeoutSeconds:       5,
		SearchLimit:               10,
		SearchThreshold:           0.7,
		VersionRetryAttempts:      5,
		BootstrapTimeoutSeconds:   1,
		HealthProbeTimeoutSeconds: 1,
		HealthIntervalSeconds:     1,
	}
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
