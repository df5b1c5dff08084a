// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/emotive/config.yaml",
	"/etc/emotive/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Model: ModelConfig{
			Backend:             "linear",
			Path:                "models/emotion_linear.json",
			RemoteURL:           "",
			RemoteTimeout:       10 * time.Second,
			RemoteRetries:       3,
			RetryBaseDelay:      500 * time.Millisecond,
			RemoteRPS:           50,
			RemoteBurst:         10,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Batch: BatchConfig{
			MaxUploadBytes: 16 << 20, // 16MB, same cap as the original upload form
			MaxRows:        100000,
			PreviewRows:    100,
		},
		Store: StoreConfig{
			Path:       "/data/emotive",
			InMemory:   false,
			Retention:  7 * 24 * time.Hour,
			GCInterval: 10 * time.Minute,
		},
		Events: EventsConfig{
			Enabled: true,
			Buffer:  64,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//  1. Defaults
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables listed in envMappings
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Model
	"model_backend":               "model.backend",
	"model_path":                  "model.path",
	"model_remote_url":            "model.remote_url",
	"model_remote_timeout":        "model.remote_timeout",
	"model_remote_retries":        "model.remote_retries",
	"model_retry_base_delay":      "model.retry_base_delay",
	"model_remote_rps":            "model.remote_rps",
	"model_remote_burst":          "model.remote_burst",
	"model_breaker_max_requests":  "model.breaker_max_requests",
	"model_breaker_interval":      "model.breaker_interval",
	"model_breaker_timeout":       "model.breaker_timeout",
	"model_breaker_min_requests":  "model.breaker_min_requests",
	"model_breaker_failure_ratio": "model.breaker_failure_ratio",

	// Batch
	"batch_max_upload_bytes": "batch.max_upload_bytes",
	"batch_max_rows":         "batch.max_rows",
	"batch_preview_rows":     "batch.preview_rows",

	// Store
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_retention":   "store.retention",
	"store_gc_interval": "store.gc_interval",

	// Events
	"events_enabled": "events.enabled",
	"events_buffer":  "events.buffer",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
//
//	MODEL_PATH -> model.path
//	HTTP_PORT  -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
