// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validEnvironments = map[string]bool{
	"development": true, "staging": true, "production": true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateModel() error {
	switch c.Model.Backend {
	case "linear":
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_BACKEND=linear")
		}
		return nil
	case "remote":
		if c.Model.RemoteURL == "" {
			return fmt.Errorf("MODEL_REMOTE_URL is required when MODEL_BACKEND=remote")
		}
		if err := validateHTTPURL(c.Model.RemoteURL, "MODEL_REMOTE_URL"); err != nil {
			return fmt.Errorf("MODEL_REMOTE_URL is invalid: %w", err)
		}
		if c.Model.RemoteTimeout <= 0 {
			return fmt.Errorf("MODEL_REMOTE_TIMEOUT must be positive")
		}
		if c.Model.RemoteRetries < 0 || c.Model.RemoteRetries > 10 {
			return fmt.Errorf("MODEL_REMOTE_RETRIES must be between 0 and 10")
		}
		if c.Model.RemoteRPS <= 0 || c.Model.RemoteBurst < 1 {
			return fmt.Errorf("MODEL_REMOTE_RPS must be positive and MODEL_REMOTE_BURST at least 1")
		}
		if c.Model.BreakerFailureRatio <= 0 || c.Model.BreakerFailureRatio > 1 {
			return fmt.Errorf("MODEL_BREAKER_FAILURE_RATIO must be in (0, 1]")
		}
		return nil
	default:
		return fmt.Errorf("MODEL_BACKEND must be one of: linear, remote")
	}
}

func (c *Config) validateBatch() error {
	if c.Batch.MaxUploadBytes < 1024 {
		return fmt.Errorf("BATCH_MAX_UPLOAD_BYTES must be at least 1024")
	}
	if c.Batch.MaxRows < 1 {
		return fmt.Errorf("BATCH_MAX_ROWS must be at least 1")
	}
	if c.Batch.PreviewRows < 0 {
		return fmt.Errorf("BATCH_PREVIEW_ROWS must not be negative")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	if c.Store.Retention < 0 {
		return fmt.Errorf("STORE_RETENTION must not be negative")
	}
	if c.Store.GCInterval < 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks scheme, host and the absence of a query string.
// Paths are allowed so that model servers mounted under a prefix work.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
