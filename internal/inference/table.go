// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package inference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Table is a header row plus data rows of string cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadCSV reads a CSV table whose first record is the header. Rows may be
// shorter than the header; a row with more fields than the header is
// ErrUnreadableTable. An input with no records at all yields an empty
// table. maxRows <= 0 disables the row limit.
func ReadCSV(r io.Reader, name string, maxRows int) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	t := &Table{Name: name}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableTable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t.Header = header

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableTable, err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrUnreadableTable, line, len(rec), len(header))
		}
		if maxRows > 0 && len(t.Rows) >= maxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrTableTooLarge, maxRows)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes the header and rows.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ArtifactName returns the file name of the augmented table produced from
// an upload called original at time at, e.g.
// "predictions_session1_20260102_150405.csv".
func ArtifactName(original string, at time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || strings.Trim(base, "_") == "" {
		base = "upload"
	}
	return fmt.Sprintf("predictions_%s_%s.csv", base, at.Format("20060102_150405"))
}
