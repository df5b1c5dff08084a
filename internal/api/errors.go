// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/logging"
)

// missingSample bounds the feature names listed in error details.
const missingSample = 10

// respondServiceError translates an inference error into an API error.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var (
		countErr   *features.CountError
		valueErr   *features.ValueError
		formatErr  *features.FormatError
		missingErr *inference.MissingFeaturesError
	)

	switch {
	case errors.As(err, &countErr):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeWrongFeatureCount, err.Error(), map[string]int{
			"expected": countErr.Want,
			"received": countErr.Got,
		})
	case errors.As(err, &valueErr):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeInvalidValue, err.Error(), map[string]interface{}{
			"feature": features.Default().Feature(valueErr.Index).Name,
			"index":   valueErr.Index,
		})
	case errors.As(err, &formatErr):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeInvalidFormat, err.Error(), map[string]interface{}{
			"index": formatErr.Index,
			"value": formatErr.Raw,
		})
	case errors.As(err, &missingErr):
		sample := missingErr.Missing
		if len(sample) > missingSample {
			sample = sample[:missingSample]
		}
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeNoMatchingFeatures, err.Error(), map[string]interface{}{
			"missing_count":  len(missingErr.Missing),
			"missing_sample": sample,
		})
	case errors.Is(err, inference.ErrUnreadableTable):
		rw.Error(http.StatusBadRequest, ErrCodeUnreadableTable, err.Error())
	case errors.Is(err, inference.ErrTableTooLarge):
		rw.Error(http.StatusRequestEntityTooLarge, ErrCodeTableTooLarge, err.Error())
	case errors.Is(err, inference.ErrClassifierUnavailable):
		rw.ServiceUnavailable(ErrCodeClassifierUnavailable, "Model not loaded. Please check server configuration.")
	case classifier.IsUnavailable(err):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Model unreachable")
		rw.ServiceUnavailable(ErrCodeClassifierUnavailable, "Model temporarily unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Request aborted")
		rw.ServiceUnavailable(ErrCodeServiceUnavailable, "Request canceled or timed out")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Prediction failed")
		rw.Error(http.StatusBadGateway, ErrCodeClassifierFailed, "Prediction error: "+err.Error())
	}
}
