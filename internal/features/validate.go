// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package features

import (
	"math"
	"strconv"
	"strings"
)

// Vector is a validated feature vector aligned to the Spec.
type Vector [Count]float64

// Slice returns the values as a new slice.
func (v Vector) Slice() []float64 {
	out := make([]float64, Count)
	copy(out, v[:])
	return out
}

// Validate checks that values holds exactly Count finite numbers. The
// count is checked before finiteness; on success the returned vector is
// element-wise equal to values.
func Validate(values []float64) (Vector, error) {
	var v Vector
	if len(values) != Count {
		return v, &CountError{Got: len(values), Want: Count}
	}
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return v, &ValueError{Index: i, Value: x}
		}
	}
	copy(v[:], values)
	return v, nil
}

// ParseStrict parses every raw value as a float and validates the result.
// The first value that does not parse yields a *FormatError.
func ParseStrict(raw []string) (Vector, error) {
	values := make([]float64, len(raw))
	for i, r := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return Vector{}, &FormatError{Index: i, Raw: r}
		}
		values[i] = f
	}
	return Validate(values)
}

// ParseLenient parses raw as a float. Blank or unparsable input yields
// (0, false). Text such as "inf" or "NaN" parses successfully and is left for
// Validate to reject.
func ParseLenient(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Align builds a Count-length slice by asking lookup for each feature in
// order. Features lookup cannot supply, or whose value does not parse, are
// set to 0 and their canonical names returned in missing.
func (s *Spec) Align(lookup func(f Feature) (string, bool)) (values []float64, missing []string) {
	values = make([]float64, len(s.features))
	for i, f := range s.features {
		raw, ok := lookup(f)
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		x, ok := ParseLenient(raw)
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		values[i] = x
	}
	return values, missing
}

// Stats summarizes a vector for logging.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summarize returns the min, max and mean of v.
func Summarize(v Vector) Stats {
	st := Stats{Min: v[0], Max: v[0]}
	var sum float64
	for _, x := range v {
		st.Min = math.Min(st.Min, x)
		st.Max = math.Max(st.Max, x)
		sum += x
	}
	st.Mean = sum / Count
	return st
}
