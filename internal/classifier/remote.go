// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
	"golang.org/x/time/rate"
)

// ErrRemoteUnhealthy is returned by Ping when the model server reports that
// it has no model loaded.
var ErrRemoteUnhealthy = errors.New("model server unhealthy")

// RemoteConfig configures a Remote client.
type RemoteConfig struct {
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RPS            float64
	Burst          int
}

// Remote is a Classifier served by an HTTP model server.
//
// Wire format:
//
//	POST {url}/predict  {"instances": [[45 floats], ...]}
//	                 -> {"predictions": [int, ...], "probabilities": [[3 floats], ...]}
//	GET  {url}/health -> {"status": "healthy", "model_loaded": true, "model_type": "..."}
type Remote struct {
	baseURL        string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration

	mu        sync.RWMutex
	modelType string
}

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions   []int       `json:"predictions"`
	Probabilities [][]float64 `json:"probabilities"`
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelType   string `json:"model_type"`
}

// NewRemote creates a client. It does not contact the server.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.RPS <= 0 {
		cfg.RPS = float64(rate.Inf)
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 500 * time.Millisecond
	}
	return &Remote{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// Info describes the remote model. The model type is learned from the most
// recent successful Ping.
func (r *Remote) Info() Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Info{
		Backend:  "remote",
		Type:     r.modelType,
		Classes:  []int{0, 1, 2},
		Features: features.Count,
		Source:   r.baseURL,
	}
}

// Ping checks the server's health endpoint.
func (r *Remote) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var health healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&health); err != nil {
		return fmt.Errorf("decode health response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !health.ModelLoaded {
		return fmt.Errorf("%w: HTTP %d, status %q", ErrRemoteUnhealthy, resp.StatusCode, health.Status)
	}

	r.mu.Lock()
	r.modelType = health.ModelType
	r.mu.Unlock()
	return nil
}

// Predict returns class ids for rows.
func (r *Remote) Predict(ctx context.Context, rows [][]float64) ([]int, error) {
	ids, _, err := r.Score(ctx, rows)
	return ids, err
}

// PredictProba returns class probabilities for rows.
func (r *Remote) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	_, probs, err := r.Score(ctx, rows)
	return probs, err
}

// Score sends rows to the model server in one request.
func (r *Remote) Score(ctx context.Context, rows [][]float64) ([]int, [][]float64, error) {
	body, err := json.Marshal(predictRequest{Instances: rows})
	if err != nil {
		return nil, nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := r.postWithRetry(ctx, r.baseURL+"/predict", body)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, nil, fmt.Errorf("model server returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, fmt.Errorf("decode predict response: %w", err)
	}
	return out.Predictions, out.Probabilities, nil
}

// postWithRetry retries on 429 and 503 with exponential backoff, honoring
// Retry-After when the server sends one.
func (r *Remote) postWithRetry(ctx context.Context, url string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if id := logging.RequestIDFromContext(ctx); id != "" {
			req.Header.Set("X-Request-ID", id)
		}

		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}
		_ = resp.Body.Close()

		lastErr = fmt.Errorf("model server busy after %d retries (HTTP %d)", r.maxRetries, resp.StatusCode)
		if attempt == r.maxRetries {
			break
		}

		delay := r.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}
		metrics.RemoteRetries.Inc()
		logging.Ctx(ctx).Debug().Int("attempt", attempt+1).Dur("delay", delay).Int("status", resp.StatusCode).Msg("Retrying model server request")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
