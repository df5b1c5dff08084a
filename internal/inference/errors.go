// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/emotive/internal/features"
)

var (
	// ErrClassifierUnavailable is returned when no classifier is loaded.
	ErrClassifierUnavailable = errors.New("classifier not loaded")

	// ErrNoMatchingFeatures is returned when a table has none of the required feature columns.
	ErrNoMatchingFeatures = errors.New("no matching feature columns")

	// ErrUnreadableTable is returned when uploaded data is not a well-formed CSV table.
	ErrUnreadableTable = errors.New("unreadable table")

	// ErrTableTooLarge is returned when a table exceeds the configured row limit.
	ErrTableTooLarge = errors.New("table too large")
)

// missingSampleSize bounds how many missing names an error message lists.
const missingSampleSize = 10

// MissingFeaturesError lists the required features a table lacks.
type MissingFeaturesError struct {
	Missing []string
}

func (e *MissingFeaturesError) Error() string {
	sample := e.Missing
	if len(sample) > missingSampleSize {
		sample = sample[:missingSampleSize]
	}
	msg := fmt.Sprintf("no matching feature columns found; missing %d required features: %s",
		len(e.Missing), strings.Join(sample, ", "))
	if len(e.Missing) > len(sample) {
		msg += ", ..."
	}
	return msg
}

func (e *MissingFeaturesError) Unwrap() error { return ErrNoMatchingFeatures }

// ErrorKind classifies err for metrics labels and API error codes.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, features.ErrWrongFeatureCount):
		return "wrong_feature_count"
	case errors.Is(err, features.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, features.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, ErrClassifierUnavailable):
		return "classifier_unavailable"
	case errors.Is(err, ErrNoMatchingFeatures):
		return "no_matching_features"
	case errors.Is(err, ErrUnreadableTable):
		return "unreadable_table"
	case errors.Is(err, ErrTableTooLarge):
		return "table_too_large"
	default:
		return "classifier"
	}
}
