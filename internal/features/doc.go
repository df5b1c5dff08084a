// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

/*
Package features defines the fixed 45-feature input contract of the emotion
classifier and validates vectors against it.

# Feature Spec

The Spec is an ordered, immutable list of canonical feature names built once
at package initialization. Position i of every feature vector holds the value
of Spec feature i. Each feature also answers to a positional alias "f<i>"
(f0..f44), which is how the single-record web form names its fields.

	spec := features.Default()
	i, ok := spec.Index("alpha_power") // 14, true
	i, ok = spec.Index("f14")           // 14, true

# Validation

Validate checks the length (exactly 45) and finiteness of a numeric slice:

	vec, err := features.Validate(values)
	switch {
	case errors.Is(err, features.ErrWrongFeatureCount):
	case errors.Is(err, features.ErrInvalidValue):
	}

ParseStrict converts raw strings first and fails with ErrInvalidFormat on the
first value that is not a number. ParseLenient is the forgiving conversion
used by form and CSV input: blank or unparsable text becomes 0.

Align builds a vector from any name-keyed source and reports which features
had to be substituted with 0.
*/
package features
