// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/emotive/internal/inference"
)

type predictFlags struct {
	input   string
	output  string
	maxRows int
}

func newPredictCmd(g *globalFlags) *cobra.Command {
	f := &predictFlags{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score every row of a CSV file",
		Long: `Reads a CSV whose header names feature columns (canonical names or
f0..f44 aliases), scores each row and writes the input table with the
prediction columns appended. The batch summary is printed as JSON.

Without --output the result is written next to the input as
predictions_<name>_<timestamp>.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			svc, err := g.service(ctx)
			if err != nil {
				return err
			}
			return runPredict(ctx, cmd, svc, f)
		},
	}
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input CSV file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output CSV file")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "reject inputs with more rows (0 = unlimited)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPredict(ctx context.Context, cmd *cobra.Command, svc *inference.Service, f *predictFlags) error {
	in, err := os.Open(f.input)
	if err != nil {
		return err
	}
	defer in.Close()

	table, err := inference.ReadCSV(bufio.NewReader(in), filepath.Base(f.input), f.maxRows)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.input, err)
	}

	result, err := svc.ProcessBatch(ctx, table)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = filepath.Join(filepath.Dir(f.input), inference.ArtifactName(table.Name, result.Summary.ProcessedAt))
	}
	if err := writeTable(output, result.Table); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Output  string                 `json:"output"`
		Summary inference.BatchSummary `json:"summary"`
	}{output, result.Summary})
}

func writeTable(path string, t *inference.Table) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(out)
	if err := t.WriteCSV(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Flush()
}
