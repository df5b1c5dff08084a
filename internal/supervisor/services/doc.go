// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Package services adapts server components to suture.Service.
//
//   - HTTPServerService: ListenAndServe/Shutdown to Serve(ctx)
//   - StoreGCService: periodic artifact store value log GC
//
// The batch history recorder in package events implements suture.Service
// itself and needs no wrapper.
package services
