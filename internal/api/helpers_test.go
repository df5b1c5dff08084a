// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/store"
)

// stubClassifier answers every row with class 2 at 80% unless err is set.
type stubClassifier struct {
	err error
}

func (s *stubClassifier) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]int, len(rows))
	for i := range ids {
		ids[i] = 2
	}
	return ids, nil
}

func (s *stubClassifier) PredictProba(_ context.Context, rows [][]float64) ([][]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float64, len(rows))
	for i := range out {
		out[i] = []float64{0.1, 0.1, 0.8}
	}
	return out, nil
}

func (s *stubClassifier) Info() classifier.Info {
	return classifier.Info{Backend: "stub", Type: "StubClassifier", Classes: []int{0, 1, 2}, Features: 45}
}

// envelope decodes APIResponse keeping Data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", body, err)
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to unmarshal data %q: %v", env.Data, err)
	}
}

func testBatchConfig() config.BatchConfig {
	return config.BatchConfig{MaxUploadBytes: 1 << 20, MaxRows: 100, PreviewRows: 2}
}

func openMemoryStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(&config.StoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newTestServer serves the full router around c. A nil c runs without a
// model; a nil st runs without a store.
func newTestServer(t *testing.T, c classifier.Classifier, st ArtifactStore) *httptest.Server {
	t.Helper()
	var svc *inference.Service
	if c == nil {
		svc = inference.NewService(nil)
	} else {
		svc = inference.NewService(c)
	}
	h := NewHandler(svc, st, nil, testBatchConfig())
	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	srv := httptest.NewServer(NewRouter(h, mw).SetupChi())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return resp, body
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	return doRequest(t, req)
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(t, req)
}

// uploadCSV posts content as the multipart field "file" named filename.
func uploadCSV(t *testing.T, url, filename, content string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return doRequest(t, req)
}
