// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/metrics"
)

// Sentinel values of a failed row.
const (
	ErrorPrediction = -1
	ErrorEmotion    = "ERROR"
)

// summaryErrorLimit bounds the errors exposed in a BatchSummary.
const summaryErrorLimit = 10

// ProcessedAtLayout formats the processed_at column.
const ProcessedAtLayout = "2006-01-02 15:04:05"

// ResultColumns are appended, in order, to every augmented table.
var ResultColumns = []string{
	"prediction",
	"emotion",
	"confidence",
	"prob_negative",
	"prob_neutral",
	"prob_positive",
	"processing_error",
	"missing_features_count",
	"processed_at",
}

// RowResult is the outcome of one table row.
type RowResult struct {
	Row             int      `json:"row"` // 1-based
	Prediction      int      `json:"prediction"`
	Emotion         string   `json:"emotion"`
	Confidence      float64  `json:"confidence"`
	ProbNegative    float64  `json:"prob_negative"`
	ProbNeutral     float64  `json:"prob_neutral"`
	ProbPositive    float64  `json:"prob_positive"`
	Error           string   `json:"error,omitempty"`
	MissingCount    int      `json:"missing_features_count"`
	MissingFeatures []string `json:"missing_features,omitempty"`
}

// OK reports whether the row was scored.
func (r *RowResult) OK() bool {
	return r.Error == ""
}

// FeatureCoverage reports how many required feature columns a table has.
type FeatureCoverage struct {
	Required   int      `json:"required_features"`
	Available  int      `json:"available_features"`
	Missing    int      `json:"missing_features"`
	Percentage float64  `json:"coverage_percentage"`
	Absent     []string `json:"absent_features,omitempty"`
}

// BatchSummary aggregates a processed table.
type BatchSummary struct {
	TotalRows           int             `json:"total_rows"`
	Successful          int             `json:"successful_predictions"`
	Failed              int             `json:"failed_predictions"`
	SuccessRate         float64         `json:"success_rate"`
	Errors              []string        `json:"errors"`
	Coverage            FeatureCoverage `json:"feature_coverage"`
	EmotionDistribution map[string]int  `json:"emotion_distribution"`
	AverageConfidence   float64         `json:"average_confidence"`
	ProcessedAt         time.Time       `json:"processed_at"`
	DurationMillis      int64           `json:"duration_ms"`
}

// BatchResult is everything ProcessBatch produces.
type BatchResult struct {
	Summary BatchSummary
	Rows    []RowResult
	Table   *Table   // input columns plus ResultColumns
	Errors  []string // every row error, in row order
}

// ProcessBatch scores every row of t.
//
// Feature columns are located by header name (canonical name or alias). A
// table with rows but none of the feature columns is rejected with a
// *MissingFeaturesError. Otherwise each row is aligned to the feature spec,
// with absent or unparsable cells set to 0 and counted, validated and
// scored on its own. Row failures are recorded in that row's result and do
// not stop the batch. Cancellation of ctx does.
func (s *Service) ProcessBatch(ctx context.Context, t *Table) (*BatchResult, error) {
	if s.classifier == nil {
		metrics.RecordBatchRejected()
		return nil, ErrClassifierUnavailable
	}

	start := time.Now()
	spec := features.Default()
	columns, coverage := matchColumns(spec, t.Header)

	if len(t.Rows) > 0 && coverage.Available == 0 {
		metrics.RecordBatchRejected()
		return nil, &MissingFeaturesError{Missing: coverage.Absent}
	}

	processedAt := s.now()
	stamp := processedAt.Format(ProcessedAtLayout)

	res := &BatchResult{
		Rows:  make([]RowResult, 0, len(t.Rows)),
		Table: &Table{Name: t.Name, Header: append(append([]string{}, t.Header...), ResultColumns...)},
	}
	res.Table.Rows = make([][]string, 0, len(t.Rows))

	distribution := make(map[string]int)
	var confidenceSum float64

	for i, cells := range t.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values, missing := spec.Align(func(f features.Feature) (string, bool) {
			j := columns[f.Index]
			if j < 0 || j >= len(cells) {
				return "", false
			}
			return cells[j], true
		})

		row := s.scoreRow(ctx, i+1, values, missing)
		res.Rows = append(res.Rows, row)
		res.Table.Rows = append(res.Table.Rows, augment(cells, len(t.Header), &row, stamp))

		if row.OK() {
			distribution[row.Emotion]++
			confidenceSum += row.Confidence
		} else {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %s", row.Row, row.Error))
		}
	}

	successful := len(res.Rows) - len(res.Errors)
	summary := BatchSummary{
		TotalRows:           len(res.Rows),
		Successful:          successful,
		Failed:              len(res.Errors),
		Errors:              firstN(res.Errors, summaryErrorLimit),
		Coverage:            coverage,
		EmotionDistribution: distribution,
		ProcessedAt:         processedAt,
		DurationMillis:      time.Since(start).Milliseconds(),
	}
	if summary.TotalRows > 0 {
		summary.SuccessRate = round(float64(successful)/float64(summary.TotalRows)*100, 1)
	}
	if successful > 0 {
		summary.AverageConfidence = round(confidenceSum/float64(successful), 1)
	}
	res.Summary = summary

	metrics.RecordBatch(summary.Successful, summary.Failed, coverage.Percentage, time.Since(start))
	logging.Ctx(ctx).Info().
		Str("table", t.Name).
		Int("rows", summary.TotalRows).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Float64("coverage", coverage.Percentage).
		Dur("duration", time.Since(start)).
		Msg("Batch processed")

	return res, nil
}

func (s *Service) scoreRow(ctx context.Context, n int, values []float64, missing []string) RowResult {
	row := RowResult{
		Row:             n,
		Prediction:      ErrorPrediction,
		Emotion:         ErrorEmotion,
		MissingCount:    len(missing),
		MissingFeatures: missing,
	}

	vec, err := features.Validate(values)
	if err == nil {
		var o outcome
		o, err = s.score(ctx, vec.Slice())
		if err == nil {
			row.Prediction = o.classID
			row.Emotion = o.emotion
			row.Confidence = o.confidence
			row.ProbNegative = o.probabilities[0]
			row.ProbNeutral = o.probabilities[1]
			row.ProbPositive = o.probabilities[2]
			metrics.RecordPrediction("batch", o.emotion, o.confidence)
			return row
		}
		err = fmt.Errorf("prediction failed: %w", err)
	}

	metrics.RecordPredictionError("batch", ErrorKind(err))
	row.Error = err.Error()
	if len(missing) > 0 {
		row.Error += fmt.Sprintf(" (%d missing features substituted with 0)", len(missing))
	}
	return row
}

// matchColumns maps each feature position to its header column, or -1. When
// a feature appears more than once the first column wins.
func matchColumns(spec *features.Spec, header []string) ([]int, FeatureCoverage) {
	columns := make([]int, spec.Len())
	for i := range columns {
		columns[i] = -1
	}
	for j, h := range header {
		if i, ok := spec.Index(h); ok && columns[i] < 0 {
			columns[i] = j
		}
	}

	cov := FeatureCoverage{Required: spec.Len()}
	for i, j := range columns {
		if j >= 0 {
			cov.Available++
		} else {
			cov.Absent = append(cov.Absent, spec.Feature(i).Name)
		}
	}
	cov.Missing = cov.Required - cov.Available
	cov.Percentage = round(float64(cov.Available)/float64(cov.Required)*100, 2)
	return columns, cov
}

// augment pads cells to the header width and appends the result columns.
func augment(cells []string, width int, r *RowResult, stamp string) []string {
	out := make([]string, width, width+len(ResultColumns))
	copy(out, cells)
	return append(out,
		strconv.Itoa(r.Prediction),
		r.Emotion,
		formatFloat(r.Confidence),
		formatFloat(r.ProbNegative),
		formatFloat(r.ProbNeutral),
		formatFloat(r.ProbPositive),
		r.Error,
		strconv.Itoa(r.MissingCount),
		stamp,
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return append([]string{}, s...)
	}
	return append([]string{}, s[:n]...)
}
