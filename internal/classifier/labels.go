// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package classifier

import "strconv"

// Emotion labels.
const (
	Negative = "NEGATIVE"
	Neutral  = "NEUTRAL"
	Positive = "POSITIVE"
)

// Labels is the fixed class-id to label table; Labels[id] is the label of id.
// The mapping was established experimentally against the trained model and
// is not derived at runtime.
var Labels = [3]string{Negative, Neutral, Positive}

// MapLabel returns the label of class id, or "UNKNOWN_<id>" for ids outside
// the table.
func MapLabel(id int) string {
	if id >= 0 && id < len(Labels) {
		return Labels[id]
	}
	return "UNKNOWN_" + strconv.Itoa(id)
}
