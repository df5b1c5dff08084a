// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package features

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongFeatureCount is returned when a vector does not hold exactly Count values.
	ErrWrongFeatureCount = errors.New("wrong feature count")

	// ErrInvalidValue is returned when a value is NaN or infinite.
	ErrInvalidValue = errors.New("invalid feature value")

	// ErrInvalidFormat is returned when a raw value cannot be parsed as a number.
	ErrInvalidFormat = errors.New("invalid feature format")
)

// CountError carries the number of values actually received.
type CountError struct {
	Got  int
	Want int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("expected %d features, got %d", e.Want, e.Got)
}

func (e *CountError) Unwrap() error { return ErrWrongFeatureCount }

// ValueError identifies the first non-finite value.
type ValueError struct {
	Index int
	Value float64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("features contain NaN or infinite values (%s = %v)", defaultSpec.features[e.Index].Name, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

// FormatError identifies the first raw value that failed to parse.
type FormatError struct {
	Index int
	Raw   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid feature format at position %d: %q is not a number", e.Index, e.Raw)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }
