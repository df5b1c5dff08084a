// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/emotive/internal/api"
	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/events"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/store"
	"github.com/tomtom215/emotive/internal/supervisor"
	"github.com/tomtom215/emotive/internal/supervisor/services"
)

// modelLoadTimeout bounds the initial model load or remote health check.
const modelLoadTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("model_backend", cfg.Model.Backend).
		Msg("Starting Emotive with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := inference.NewService(loadClassifier(ctx, &cfg.Model))

	st, err := store.Open(&cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing artifact store")
		}
	}()
	logging.Info().
		Bool("in_memory", cfg.Store.InMemory).
		Str("path", cfg.Store.Path).
		Dur("retention", cfg.Store.Retention).
		Msg("Artifact store opened")

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if !cfg.Store.InMemory {
		tree.AddStorageService(services.NewStoreGCService(st, cfg.Store.GCInterval))
	}

	// Without a bus the handler writes history directly, so publisher stays
	// a nil interface rather than a nil *events.Bus.
	var publisher api.EventPublisher
	if cfg.Events.Enabled {
		bus := events.NewBus(cfg.Events.Buffer)
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		tree.AddEventService(events.NewRecorder(bus, st))
		publisher = bus
		logging.Info().Int64("buffer", cfg.Events.Buffer).Msg("Event bus enabled")
	}

	handler := api.NewHandler(svc, st, publisher, cfg.Batch)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	// WriteTimeout bounds batch processing too.
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          stdlog.New(logging.Logger(), "http: ", 0),
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadClassifier loads the configured model. A load failure is logged and
// the server runs without a model.
func loadClassifier(ctx context.Context, cfg *config.ModelConfig) classifier.Classifier {
	ctx, cancel := context.WithTimeout(ctx, modelLoadTimeout)
	defer cancel()

	c, err := classifier.Load(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).
			Str("backend", cfg.Backend).
			Str("path", cfg.Path).
			Msg("Model not loaded; prediction endpoints will answer 503")
		return nil
	}
	return c
}
