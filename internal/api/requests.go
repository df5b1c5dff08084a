// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// maxPredictBodyBytes bounds single-record request bodies.
const maxPredictBodyBytes = 1 << 20

// defaultHistoryLimit is used when ?limit is absent.
const defaultHistoryLimit = 20

// historyQuery holds GET /api/v1/batch parameters.
type historyQuery struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}

func parseHistoryQuery(r *http.Request) (historyQuery, error) {
	q := historyQuery{Limit: defaultHistoryLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("limit must be an integer: %q", raw)
		}
		q.Limit = n
	}
	return q, nil
}

// downloadParams holds GET /api/v1/batch/{id}/download parameters.
type downloadParams struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// predictInput is a decoded single-record request. Exactly one of Values
// and Vector is set.
type predictInput struct {
	Values map[string]string // name or alias to raw value, lenient
	Vector []string          // ordered raw values, strict
}

var errEmptyBody = errors.New("request body is empty")

// parsePredictInput accepts three shapes:
//
//	{"features": [0.1, "0.2", ...]}          ordered vector, every value must be numeric
//	{"values": {"eeg_f3": 0.1, "f1": "2"}}   named values
//	{"eeg_f3": 0.1, "f1": "2"}               named values
//
// and form submissions with one field per feature name or alias.
func parsePredictInput(r *http.Request) (*predictInput, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return parseJSONPredict(r)
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxPredictBodyBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	values := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return &predictInput{Values: values}, nil
}

func parseJSONPredict(r *http.Request) (*predictInput, error) {
	var body map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if body == nil {
		return nil, errEmptyBody
	}

	if raw, ok := body["features"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.New(`"features" must be an array`)
		}
		vector := make([]string, len(items))
		for i, item := range items {
			vector[i] = rawToString(item)
		}
		return &predictInput{Vector: vector}, nil
	}

	if raw, ok := body["values"]; ok {
		var named map[string]json.RawMessage
		if err := json.Unmarshal(raw, &named); err != nil {
			return nil, errors.New(`"values" must be an object`)
		}
		body = named
	}

	values := make(map[string]string, len(body))
	for k, v := range body {
		values[k] = rawToString(v)
	}
	return &predictInput{Values: values}, nil
}

// rawToString returns a JSON string's content, "" for null, and the raw
// text of anything else.
func rawToString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
