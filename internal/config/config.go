// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package config loads Emotive configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence
// (environment wins). Config is immutable after LoadWithKoanf returns.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Model    ModelConfig    `koanf:"model"`
	Batch    BatchConfig    `koanf:"batch"`
	Store    StoreConfig    `koanf:"store"`
	Events   EventsConfig   `koanf:"events"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ModelConfig selects and configures the classifier backend.
//
// Environment Variables:
//   - MODEL_BACKEND: "linear" (JSON model file) or "remote" (model server)
//   - MODEL_PATH: path of the linear model file
//   - MODEL_REMOTE_URL: base URL of the model server
//   - MODEL_REMOTE_TIMEOUT: per-request timeout
//   - MODEL_REMOTE_RETRIES: retries on HTTP 429/503
//   - MODEL_REMOTE_RPS / MODEL_REMOTE_BURST: client-side rate limit
type ModelConfig struct {
	Backend        string        `koanf:"backend"`
	Path           string        `koanf:"path"`
	RemoteURL      string        `koanf:"remote_url"`
	RemoteTimeout  time.Duration `koanf:"remote_timeout"`
	RemoteRetries  int           `koanf:"remote_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	RemoteRPS      float64       `koanf:"remote_rps"`
	RemoteBurst    int           `koanf:"remote_burst"`

	// Circuit breaker around the remote backend.
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// BatchConfig bounds CSV batch uploads.
type BatchConfig struct {
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
	MaxRows        int   `koanf:"max_rows"`
	PreviewRows    int   `koanf:"preview_rows"`
}

// StoreConfig configures the BadgerDB artifact store.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	Retention  time.Duration `koanf:"retention"` // 0 keeps artifacts forever
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EventsConfig configures the in-process event bus.
type EventsConfig struct {
	Enabled bool  `koanf:"enabled"`
	Buffer  int64 `koanf:"buffer"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional YAML file and the
// environment. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
