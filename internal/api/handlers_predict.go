// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"net/http"

	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/logging"
)

// Predict scores a single record.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Loaded() {
		respondServiceError(w, r, inference.ErrClassifierUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPredictBodyBytes)
	in, err := parsePredictInput(r)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	var pred *inference.Prediction
	if in.Vector != nil {
		pred, err = h.svc.PredictVector(r.Context(), in.Vector)
	} else {
		pred, err = h.svc.PredictSingle(r.Context(), in.Values)
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("emotion", pred.Emotion).
		Int("prediction", pred.ClassID).
		Float64("confidence", pred.Confidence).
		Floats64("probabilities", pred.Probabilities).
		Int("missing", pred.MissingCount).
		Msg("Prediction served")

	WriteSuccess(w, r, pred)
}
