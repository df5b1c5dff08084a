// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"net/http"

	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/inference"
)

// FeatureList is the body of GET /api/v1/features.
type FeatureList struct {
	Count    int                `json:"count"`
	Features []features.Feature `json:"features"`
	Labels   []string           `json:"labels"`
}

// Features lists the input features in model order.
func (h *Handler) Features(w http.ResponseWriter, r *http.Request) {
	spec := features.Default()
	WriteSuccess(w, r, FeatureList{
		Count:    spec.Len(),
		Features: spec.Features(),
		Labels:   classifier.Labels[:],
	})
}

// ModelInfo describes the loaded model.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info, ok := h.svc.ModelInfo()
	if !ok {
		respondServiceError(w, r, inference.ErrClassifierUnavailable)
		return
	}
	WriteSuccess(w, r, info)
}

// ProbeReport is the body of GET /api/v1/model/probe.
type ProbeReport struct {
	Model   classifier.Info         `json:"model"`
	Results []inference.ProbeResult `json:"results"`
}

// ModelProbe runs the built-in probe patterns through the model.
func (h *Handler) ModelProbe(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Probe(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	info, _ := h.svc.ModelInfo()
	WriteSuccess(w, r, ProbeReport{Model: info, Results: results})
}
