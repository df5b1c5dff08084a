// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/emotive/internal/logging"
)

// readinessTimeout bounds the dependency checks of a readiness probe.
const readinessTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string  `json:"status"` // healthy or unhealthy
	ModelLoaded   bool    `json:"model_loaded"`
	ModelType     *string `json:"model_type"`
	Backend       string  `json:"backend,omitempty"`
	Store         string  `json:"store"` // ok, unavailable or disabled
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health reports whether a model is loaded. It always answers 200; the
// status field carries the verdict.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        "unhealthy",
		Store:         h.storeStatus(r.Context()),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if info, ok := h.svc.ModelInfo(); ok {
		status.Status = "healthy"
		status.ModelLoaded = true
		status.ModelType = &info.Type
		status.Backend = info.Backend
	}
	WriteSuccess(w, r, status)
}

func (h *Handler) storeStatus(ctx context.Context) string {
	if h.store == nil {
		return "disabled"
	}
	if err := h.store.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}

// HealthLive answers 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 only when the model can serve predictions and the
// store, if configured, is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.svc.Ready(ctx); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Readiness check failed: model")
		NewResponseWriter(w, r).ServiceUnavailable(ErrCodeClassifierUnavailable, "Model not ready: "+err.Error())
		return
	}
	if h.storeStatus(ctx) == "unavailable" {
		NewResponseWriter(w, r).ServiceUnavailable(ErrCodeStoreError, "Artifact store not ready")
		return
	}
	WriteSuccess(w, r, map[string]bool{"ready": true})
}
