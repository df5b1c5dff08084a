// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

/*
Package main is the entry point for the Emotive server.

Emotive classifies brain-signal feature records into three emotional states
(NEGATIVE, NEUTRAL, POSITIVE). It serves single-record predictions and CSV
batch scoring over a JSON API, keeps batch results in a BadgerDB store for
download, and records batch history through an in-process event bus.

# Application Architecture

	RootSupervisor ("emotive")
	├── storage-layer
	│   └── StoreGCService      (on-disk store only)
	├── events-layer
	│   └── history recorder    (EVENTS_ENABLED=true)
	└── api-layer
	    └── HTTP server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Classifier: linear model file or remote model server
 4. Artifact store: BadgerDB, on disk or in memory
 5. Event bus: Watermill GoChannel
 6. Supervisor tree and HTTP server

A model that fails to load does not stop the server: health reports
"unhealthy", readiness fails and prediction endpoints answer 503.

# Configuration

	HTTP_HOST=0.0.0.0
	HTTP_PORT=5000
	MODEL_BACKEND=linear            # linear or remote
	MODEL_PATH=models/emotion_linear.json
	MODEL_REMOTE_URL=http://model:8501
	STORE_PATH=/data/emotive
	STORE_IN_MEMORY=false
	STORE_RETENTION=168h
	EVENTS_ENABLED=true
	CORS_ORIGINS=https://lab.example
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
HTTP_TIMEOUT, then the event bus and store are closed.
*/
package main
