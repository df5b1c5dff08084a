// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package api exposes the inference service over HTTP using the chi router.
//
// Every JSON endpoint answers with the APIResponse envelope:
//
//	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
//	{"success": false, "error": {"code": "WRONG_FEATURE_COUNT", "message": "..."}, "meta": {...}}
//
// Routes:
//
//	GET  /api/v1/health                 service and model status
//	GET  /api/v1/health/live            liveness probe
//	GET  /api/v1/health/ready           readiness probe (model reachable)
//	GET  /api/v1/features               the 45-feature input spec
//	GET  /api/v1/model                  loaded model metadata
//	GET  /api/v1/model/probe            model response to fixed test patterns
//	POST /api/v1/predict                score one record (JSON or form)
//	POST /api/v1/batch                  score an uploaded CSV (multipart "file")
//	GET  /api/v1/batch                  recent batch history
//	GET  /api/v1/batch/{id}/download    augmented CSV of a processed batch
//	GET  /metrics                       Prometheus metrics
package api
