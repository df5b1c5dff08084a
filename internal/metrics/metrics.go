// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package metrics holds the Prometheus collectors for Emotive and small
// helpers that record into them. Collectors are registered with the default
// registry through promauto and served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_predictions_total",
			Help: "Total number of successful predictions by mode and emotion",
		},
		[]string{"mode", "emotion"}, // mode: "single", "batch", "probe"
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_prediction_errors_total",
			Help: "Total number of rejected predictions by mode and error kind",
		},
		[]string{"mode", "kind"},
	)

	PredictionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotive_prediction_confidence_percent",
			Help:    "Confidence of successful predictions in percent",
			Buckets: []float64{40, 50, 60, 70, 80, 90, 95, 99, 100},
		},
	)

	// Batch Metrics
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_batches_total",
			Help: "Total number of batch uploads by outcome",
		},
		[]string{"outcome"}, // "processed", "rejected"
	)

	BatchRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_batch_rows_total",
			Help: "Total number of batch rows by status",
		},
		[]string{"status"}, // "success", "error"
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotive_batch_duration_seconds",
			Help:    "Time to process a batch upload",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	BatchFeatureCoverage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "emotive_batch_feature_coverage_percent",
			Help:    "Share of required feature columns present in batch uploads",
			Buckets: []float64{10, 25, 50, 75, 90, 99, 100},
		},
	)

	// Classifier Metrics
	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "emotive_classifier_duration_seconds",
			Help:    "Classifier scoring call duration by backend",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend"},
	)

	ClassifierLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "emotive_classifier_loaded",
			Help: "Whether a classifier backend is loaded (1) or not (0)",
		},
		[]string{"backend"},
	)

	RemoteRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emotive_remote_classifier_retries_total",
			Help: "Total number of retried calls to the remote model server",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Artifact Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_store_operations_total",
			Help: "Total number of artifact store operations",
		},
		[]string{"operation", "result"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_events_published_total",
			Help: "Total number of events published by topic",
		},
		[]string{"topic"},
	)

	EventsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emotive_events_handled_total",
			Help: "Total number of events consumed by topic and result",
		},
		[]string{"topic", "result"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPrediction records a successful prediction.
func RecordPrediction(mode, emotion string, confidence float64) {
	PredictionsTotal.WithLabelValues(mode, emotion).Inc()
	PredictionConfidence.Observe(confidence)
}

// RecordPredictionError records a rejected prediction.
func RecordPredictionError(mode, kind string) {
	PredictionErrors.WithLabelValues(mode, kind).Inc()
}

// RecordBatch records the outcome of a processed batch.
func RecordBatch(successful, failed int, coverage float64, duration time.Duration) {
	BatchesTotal.WithLabelValues("processed").Inc()
	BatchRows.WithLabelValues("success").Add(float64(successful))
	BatchRows.WithLabelValues("error").Add(float64(failed))
	BatchFeatureCoverage.Observe(coverage)
	BatchDuration.Observe(duration.Seconds())
}

// RecordBatchRejected records a batch rejected before row processing.
func RecordBatchRejected() {
	BatchesTotal.WithLabelValues("rejected").Inc()
}

// RecordClassifierCall records the duration of one scoring call.
func RecordClassifierCall(backend string, duration time.Duration) {
	ClassifierDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// SetClassifierLoaded flips the loaded gauge for backend.
func SetClassifierLoaded(backend string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1
	}
	ClassifierLoaded.WithLabelValues(backend).Set(v)
}

// RecordStoreOperation records an artifact store call.
func RecordStoreOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(operation, result).Inc()
}

// RecordEventHandled records the result of consuming an event.
func RecordEventHandled(topic string, ok bool) {
	EventsHandled.WithLabelValues(topic, strconv.FormatBool(ok)).Inc()
}

// RecordEventPublished records one published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}
