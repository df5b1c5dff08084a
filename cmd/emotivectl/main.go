// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

// Command emotivectl runs the Emotive pipeline offline: batch-score a CSV
// file, list the feature spec, or probe a model with fixed patterns.
//
//	emotivectl predict --input session.csv
//	emotivectl predict --input session.csv --output scored.csv --model models/emotion_linear.json
//	emotivectl features --json
//	emotivectl probe --backend remote --remote-url http://model:8501
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/config"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/logging"
)

// globalFlags override the model section of the loaded configuration.
type globalFlags struct {
	backend   string
	modelPath string
	remoteURL string
	logLevel  string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "emotivectl",
		Short:         "Offline tools for the Emotive emotion classifier",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:     g.logLevel,
				Format:    "console",
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.backend, "backend", "", "classifier backend: linear or remote (default from config)")
	pf.StringVar(&g.modelPath, "model", "", "linear model file (default from config)")
	pf.StringVar(&g.remoteURL, "remote-url", "", "model server URL for the remote backend")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level")
	pf.DurationVar(&g.timeout, "timeout", 10*time.Minute, "overall operation timeout")

	root.AddCommand(newPredictCmd(g))
	root.AddCommand(newFeaturesCmd())
	root.AddCommand(newProbeCmd(g))
	return root
}

// service loads configuration, applies the flag overrides and returns an
// inference service around the selected classifier.
func (g *globalFlags) service(ctx context.Context) (*inference.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if g.backend != "" {
		cfg.Model.Backend = g.backend
	}
	if g.modelPath != "" {
		cfg.Model.Path = g.modelPath
	}
	if g.remoteURL != "" {
		cfg.Model.RemoteURL = g.remoteURL
	}

	c, err := classifier.Load(ctx, &cfg.Model)
	if err != nil {
		return nil, err
	}
	return inference.NewService(c), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
