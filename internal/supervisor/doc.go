// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervision tree.

Services are grouped into layers so a failing component is restarted
without taking down the rest:

	emotive
	├── storage-layer
	│   └── StoreGCService       (when the artifact store is on disk)
	├── events-layer
	│   └── events.Recorder      (when the event bus is enabled)
	└── api-layer
	    └── HTTPServerService

Restarts back off once a layer exceeds FailureThreshold failures, decaying
at FailureDecay per second. Supervisor events are logged through sutureslog
into the zerolog-backed slog logger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
