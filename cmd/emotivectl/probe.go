// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProbeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Run fixed test patterns through the model",
		Long: `Scores twelve synthetic inputs (constant, alternating and mixed
values) and prints the class and probabilities for each. A model that
gives the same answer for every pattern is usually miswired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
			defer cancel()

			svc, err := g.service(ctx)
			if err != nil {
				return err
			}
			results, err := svc.Probe(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tEMOTION\tCONFIDENCE\tPROBABILITIES")
			for _, r := range results {
				if r.Error != "" {
					fmt.Fprintf(tw, "%s\tERROR\t\t%s\n", r.Pattern, r.Error)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%.1f\t%v\n", r.Pattern, r.Emotion, r.Confidence, r.Probabilities)
			}
			return tw.Flush()
		},
	}
}
