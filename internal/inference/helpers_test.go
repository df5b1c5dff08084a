// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/emotive/internal/features"
)

// fixedClassifier answers every row with the same class and probabilities
// and remembers the last row it saw.
type fixedClassifier struct {
	class int
	probs []float64
	err   error

	mu   sync.Mutex
	last []float64
	rows int
}

func positiveClassifier() *fixedClassifier {
	return &fixedClassifier{class: 2, probs: []float64{0.1, 0.1, 0.8}}
}

func (f *fixedClassifier) Predict(_ context.Context, rows [][]float64) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.last = append([]float64(nil), rows[len(rows)-1]...)
	f.rows += len(rows)
	f.mu.Unlock()

	ids := make([]int, len(rows))
	for i := range ids {
		ids[i] = f.class
	}
	return ids, nil
}

func (f *fixedClassifier) PredictProba(_ context.Context, rows [][]float64) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(rows))
	for i := range out {
		out[i] = f.probs
	}
	return out, nil
}

func (f *fixedClassifier) lastRow() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestService(c *fixedClassifier) *Service {
	return NewService(c, WithClock(func() time.Time { return testTime }))
}

// fullTable builds a table with every canonical column, one row per value.
func fullTable(values ...string) *Table {
	t := &Table{Name: "session.csv", Header: features.Default().Names()}
	for _, v := range values {
		row := make([]string, features.Count)
		for i := range row {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func csvOf(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// formatValues renders values as the raw strings a client would send.
// NaN and infinities format as text that ParseFloat accepts.
func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}
