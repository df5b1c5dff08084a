// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/emotive/internal/classifier"
	"github.com/tomtom215/emotive/internal/features"
	"github.com/tomtom215/emotive/internal/inference"
)

// writeModel writes a linear model that always favors class 2.
func writeModel(t *testing.T, dir string) string {
	t.Helper()
	coef := make([][]float64, 3)
	for i := range coef {
		coef[i] = make([]float64, features.Count)
	}
	data, err := json.Marshal(classifier.LinearModel{
		Type:      "softmax_linear",
		Classes:   []int{0, 1, 2},
		Coef:      coef,
		Intercept: []float64{0, 0, 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "model.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPredictCmd(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)

	header := features.Default().Names()
	row := make([]string, len(header))
	for i := range row {
		row[i] = "0.5"
	}
	input := filepath.Join(dir, "session.csv")
	content := "id," + strings.Join(header, ",") + "\n" +
		"a," + strings.Join(row, ",") + "\n" +
		"b," + strings.Join(row[:40], ",") + "\n"
	if err := os.WriteFile(input, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "scored.csv")

	stdout, err := run(t, "predict", "--model", model, "--input", input, "--output", output)
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}

	var report struct {
		Output  string                 `json:"output"`
		Summary inference.BatchSummary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("unmarshal summary %q: %v", stdout, err)
	}
	if report.Output != output {
		t.Errorf("expected output %s, got %s", output, report.Output)
	}
	if report.Summary.TotalRows != 2 || report.Summary.Successful != 2 {
		t.Errorf("unexpected summary %+v", report.Summary)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "a,") || !strings.Contains(lines[1], ",2,POSITIVE,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	// Row b is short: five features substituted with 0.
	if !strings.Contains(lines[2], ",POSITIVE,") || !strings.Contains(lines[2], ",5,") {
		t.Errorf("unexpected second row %q", lines[2])
	}
}

func TestPredictCmd_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	input := filepath.Join(dir, "eeg.csv")
	if err := os.WriteFile(input, []byte(strings.Join(features.Default().Names(), ",")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "predict", "--model", model, "--input", input); err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "predictions_eeg_*.csv"))
	if len(matches) != 1 {
		t.Errorf("expected one predictions_eeg_*.csv, got %v", matches)
	}
}

func TestPredictCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	noFeatures := filepath.Join(dir, "other.csv")
	if err := os.WriteFile(noFeatures, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"predict", "--model", model}},
		{"input not found", []string{"predict", "--model", model, "--input", filepath.Join(dir, "nope.csv")}},
		{"no feature columns", []string{"predict", "--model", model, "--input", noFeatures}},
		{"bad model", []string{"predict", "--model", filepath.Join(dir, "nope.json"), "--input", noFeatures}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFeaturesCmd(t *testing.T) {
	out, err := run(t, "features", "--json")
	if err != nil {
		t.Fatalf("features failed: %v", err)
	}
	var list []features.Feature
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != features.Count {
		t.Errorf("expected %d features, got %d", features.Count, len(list))
	}

	out, err = run(t, "features")
	if err != nil {
		t.Fatalf("features failed: %v", err)
	}
	if !strings.HasPrefix(out, "INDEX") || strings.Count(out, "\n") != features.Count+1 {
		t.Errorf("unexpected table output:\n%s", out)
	}
}

func TestProbeCmd(t *testing.T) {
	model := writeModel(t, t.TempDir())

	out, err := run(t, "probe", "--model", model)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if got := strings.Count(out, "POSITIVE"); got != len(inference.ProbePatterns()) {
		t.Errorf("expected %d POSITIVE rows, got %d:\n%s", len(inference.ProbePatterns()), got, out)
	}
}
