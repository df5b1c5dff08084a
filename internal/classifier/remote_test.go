// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func newModelServer(t *testing.T, busy int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "healthy", ModelLoaded: true, ModelType: "Pipeline"})
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n <= busy {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		var req predictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := predictResponse{}
		for range req.Instances {
			resp.Predictions = append(resp.Predictions, 2)
			resp.Probabilities = append(resp.Probabilities, []float64{0.1, 0.1, 0.8})
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRemote_Score(t *testing.T) {
	t.Parallel()

	srv, calls := newModelServer(t, 0)
	r := NewRemote(RemoteConfig{URL: srv.URL + "/", Timeout: 5 * time.Second, MaxRetries: 2})

	ids, probs, err := Score(context.Background(), r, [][]float64{row(1), row(2)})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(ids) != 2 || ids[1] != 2 || probs[0][2] != 0.8 {
		t.Errorf("unexpected result %v %v", ids, probs)
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single round trip, got %d", calls.Load())
	}
}

func TestRemote_RetriesOnTooManyRequests(t *testing.T) {
	t.Parallel()

	srv, calls := newModelServer(t, 2)
	r := NewRemote(RemoteConfig{URL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 3, RetryBaseDelay: time.Millisecond})

	if _, _, err := r.Score(context.Background(), [][]float64{row(0)}); err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestRemote_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	srv, calls := newModelServer(t, 100)
	r := NewRemote(RemoteConfig{URL: srv.URL, Timeout: 5 * time.Second, MaxRetries: 1, RetryBaseDelay: time.Millisecond})

	if _, _, err := r.Score(context.Background(), [][]float64{row(0)}); err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestRemote_Ping(t *testing.T) {
	t.Parallel()

	srv, _ := newModelServer(t, 0)
	r := NewRemote(RemoteConfig{URL: srv.URL, Timeout: time.Second})
	if err := r.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if r.Info().Type != "Pipeline" {
		t.Errorf("expected model type from health, got %q", r.Info().Type)
	}

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "unhealthy"})
	}))
	defer unhealthy.Close()

	r2 := NewRemote(RemoteConfig{URL: unhealthy.URL, Timeout: time.Second})
	if err := r2.Ping(context.Background()); !errors.Is(err, ErrRemoteUnhealthy) {
		t.Errorf("expected ErrRemoteUnhealthy, got %v", err)
	}
}

func TestRemote_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL, Timeout: time.Second})
	if _, _, err := r.Score(context.Background(), [][]float64{row(0)}); err == nil {
		t.Error("expected error for HTTP 500")
	}
}
