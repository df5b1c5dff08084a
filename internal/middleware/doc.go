// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package middleware holds net/http middleware shared by the API router:
// request IDs and Prometheus instrumentation. Each middleware has the func(http.HandlerFunc) http.HandlerFunc
// shape; the api package adapts them for chi.
package middleware
