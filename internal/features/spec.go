// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package features

import (
	"strconv"
	"strings"
)

// Count is the number of features every vector must carry.
const Count = 45

// Feature is one position of the feature spec.
type Feature struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	Description string `json:"description"`
}

// Spec is the ordered list of canonical feature names. It is never mutated
// after construction and is safe for concurrent use.
type Spec struct {
	features []Feature
	index    map[string]int
}

var canonical = [Count][2]string{
	{"eeg_f3", "Left frontal electrode (emotional valence)"},
	{"eeg_f4", "Right frontal electrode (emotional valence)"},
	{"eeg_c3", "Left central electrode (motor activity)"},
	{"eeg_c4", "Right central electrode (motor activity)"},
	{"eeg_p3", "Left parietal electrode (attention)"},
	{"eeg_p4", "Right parietal electrode (attention)"},
	{"eeg_o1", "Left occipital electrode (visual processing)"},
	{"eeg_o2", "Right occipital electrode (visual processing)"},
	{"eeg_f7", "Left temporal electrode (language)"},
	{"eeg_f8", "Right temporal electrode (language)"},
	{"eeg_t3", "Left temporal electrode (emotion processing)"},
	{"eeg_t4", "Right temporal electrode (emotion processing)"},
	{"eeg_t5", "Left posterior temporal electrode"},
	{"eeg_t6", "Right posterior temporal electrode"},
	{"alpha_power", "Alpha power, 8-12 Hz"},
	{"beta_power", "Beta power, 12-30 Hz"},
	{"gamma_power", "Gamma power, 30-100 Hz"},
	{"theta_power", "Theta power, 4-8 Hz"},
	{"delta_power", "Delta power, 0.5-4 Hz"},
	{"alpha_beta_ratio", "Alpha/beta ratio (relaxation vs alertness)"},
	{"theta_beta_ratio", "Theta/beta ratio (meditation vs focus)"},
	{"frontal_asymmetry", "Frontal asymmetry F4-F3"},
	{"parietal_asymmetry", "Parietal asymmetry P4-P3"},
	{"temporal_asymmetry", "Temporal asymmetry T4-T3"},
	{"f3_mean_amplitude", "F3 mean amplitude"},
	{"f4_mean_amplitude", "F4 mean amplitude"},
	{"c3_variance", "C3 variance"},
	{"c4_variance", "C4 variance"},
	{"p3_std", "P3 standard deviation"},
	{"p4_std", "P4 standard deviation"},
	{"frontal_coherence", "F3-F4 coherence"},
	{"central_coherence", "C3-C4 coherence"},
	{"parietal_coherence", "P3-P4 coherence"},
	{"cross_hemispheric_coherence", "Overall cross-hemispheric coherence"},
	{"frontal_central_coherence", "Frontal-central connectivity"},
	{"central_parietal_coherence", "Central-parietal connectivity"},
	{"alpha_peak_frequency", "Individual alpha peak frequency"},
	{"beta_peak_frequency", "Individual beta peak frequency"},
	{"power_spectral_density", "Overall power spectral density"},
	{"spectral_entropy", "Spectral entropy"},
	{"hjorth_mobility", "Hjorth mobility"},
	{"hjorth_complexity", "Hjorth complexity"},
	{"zero_crossing_rate", "Zero crossing rate"},
	{"approximate_entropy", "Approximate entropy"},
	{"sample_entropy", "Sample entropy"},
}

var defaultSpec = newSpec()

// Default returns the process-wide feature spec.
func Default() *Spec {
	return defaultSpec
}

func newSpec() *Spec {
	s := &Spec{
		features: make([]Feature, Count),
		index:    make(map[string]int, Count*2),
	}
	for i, entry := range canonical {
		f := Feature{
			Index:       i,
			Name:        entry[0],
			Alias:       "f" + strconv.Itoa(i),
			Description: entry[1],
		}
		s.features[i] = f
		s.index[f.Name] = i
		s.index[f.Alias] = i
	}
	return s
}

// Len returns the number of features.
func (s *Spec) Len() int {
	return len(s.features)
}

// Names returns the canonical names in vector order.
func (s *Spec) Names() []string {
	names := make([]string, len(s.features))
	for i, f := range s.features {
		names[i] = f.Name
	}
	return names
}

// Features returns a copy of every feature in vector order.
func (s *Spec) Features() []Feature {
	out := make([]Feature, len(s.features))
	copy(out, s.features)
	return out
}

// Feature returns the feature at position i. It panics when i is out of range.
func (s *Spec) Feature(i int) Feature {
	return s.features[i]
}

// Index resolves a canonical name or positional alias to its vector position.
// Matching ignores case and surrounding whitespace.
func (s *Spec) Index(name string) (int, bool) {
	i, ok := s.index[normalize(name)]
	return i, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
