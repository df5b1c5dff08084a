// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

/*
Package inference turns raw submissions into emotion predictions.

A Service owns the loaded classifier and offers three entry points:

  - PredictSingle scores one record given as a name-to-value map. Keys are
    canonical feature names or positional aliases (f0..f44). Absent, blank or
    non-numeric values become 0, the same leniency the web form has always
    had. PredictVector is the strict variant for an ordered list of raw
    values and rejects anything that does not parse.
  - ProcessBatch scores every row of a Table. Columns are matched to the
    feature spec by name, missing or unparsable cells become 0 and are
    counted per row, and per-row failures are reported inline without
    aborting the batch. The result carries a summary, the row results and an
    augmented copy of the table with the prediction columns appended.
  - Probe scores a fixed set of extreme input patterns, which is a quick way
    to see whether a model can produce every class.

Every entry point returns ErrClassifierUnavailable before doing any work when
no classifier is loaded.

Confidence is the highest class probability as a percentage rounded to one
decimal place. Class probabilities are percentages rounded to two decimal
places. Both paths use the same precision.
*/
package inference
