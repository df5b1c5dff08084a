// Emotive - Brain Signal Emotion Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/emotive

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/emotive/internal/events"
	"github.com/tomtom215/emotive/internal/inference"
	"github.com/tomtom215/emotive/internal/logging"
	"github.com/tomtom215/emotive/internal/store"
	"github.com/tomtom215/emotive/internal/validation"
)

// uploadField is the multipart field carrying the CSV file.
const uploadField = "file"

// multipartMemory is how much of an upload is held in memory before the
// remainder spills to a temporary file.
const multipartMemory = 8 << 20

// csvContentType is the content type of batch artifacts.
const csvContentType = "text/csv; charset=utf-8"

// BatchArtifact locates the stored result file of a batch.
type BatchArtifact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int    `json:"size"`
	DownloadURL string `json:"download_url"`
}

// BatchResponse is the body of POST /api/v1/batch.
type BatchResponse struct {
	BatchID  string                 `json:"batch_id"`
	Source   string                 `json:"source"`
	Summary  inference.BatchSummary `json:"summary"`
	Preview  []inference.RowResult  `json:"preview"`
	Artifact *BatchArtifact         `json:"artifact,omitempty"`
}

// BatchUpload processes an uploaded CSV file row by row and stores the
// augmented table for download.
func (h *Handler) BatchUpload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.svc.Loaded() {
		respondServiceError(w, r, inference.ErrClassifierUnavailable)
		return
	}

	if h.batch.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.batch.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		rw.BadRequest("Expected a multipart/form-data upload")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		rw.BadRequest("No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		rw.BadRequest("No file selected")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		rw.BadRequest("Only CSV files are supported")
		return
	}

	table, err := inference.ReadCSV(file, header.Filename, h.batch.MaxRows)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	batchID := uuid.New().String()
	ctx := logging.ContextWithBatchID(r.Context(), batchID)

	result, err := h.svc.ProcessBatch(ctx, table)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := BatchResponse{
		BatchID: batchID,
		Source:  header.Filename,
		Summary: result.Summary,
		Preview: preview(result.Rows, h.batch.PreviewRows),
	}

	artifact, err := h.storeArtifact(ctx, batchID, header.Filename, result)
	if err != nil {
		// The predictions are still returned; only the download is lost.
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to store batch artifact")
	}
	if artifact != nil {
		resp.Artifact = &BatchArtifact{
			ID:          artifact.ID,
			Name:        artifact.Name,
			Size:        artifact.Size,
			DownloadURL: "/api/v1/batch/" + artifact.ID + "/download",
		}
		h.recordHistory(ctx, batchID, header.Filename, artifact.Name, &result.Summary)
	}

	WriteSuccess(w, r, resp)
}

func preview(rows []inference.RowResult, n int) []inference.RowResult {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// storeArtifact serializes the augmented table and saves it. It returns a
// nil artifact when no store is configured.
func (h *Handler) storeArtifact(ctx context.Context, id, source string, result *inference.BatchResult) (*store.Artifact, error) {
	if h.store == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := result.Table.WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("serialize results: %w", err)
	}
	a := &store.Artifact{
		ID:          id,
		Name:        inference.ArtifactName(source, result.Summary.ProcessedAt),
		ContentType: csvContentType,
		Size:        buf.Len(),
		CreatedAt:   result.Summary.ProcessedAt,
		Data:        buf.Bytes(),
	}
	if err := h.store.PutArtifact(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// recordHistory announces the batch on the event bus, or writes the history
// entry directly when no bus is configured.
func (h *Handler) recordHistory(ctx context.Context, id, source, artifact string, s *inference.BatchSummary) {
	if h.publisher != nil {
		err := h.publisher.PublishBatchCompleted(ctx, &events.BatchCompleted{
			BatchID:     id,
			RequestID:   logging.RequestIDFromContext(ctx),
			Source:      source,
			Artifact:    artifact,
			TotalRows:   s.TotalRows,
			Successful:  s.Successful,
			Failed:      s.Failed,
			SuccessRate: s.SuccessRate,
			Coverage:    s.Coverage.Percentage,
			ProcessedAt: s.ProcessedAt,
		})
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish batch event")
		}
		return
	}

	err := h.store.AppendHistory(ctx, &store.HistoryEntry{
		ID:          id,
		Source:      source,
		Artifact:    artifact,
		TotalRows:   s.TotalRows,
		Successful:  s.Successful,
		Failed:      s.Failed,
		SuccessRate: s.SuccessRate,
		Coverage:    s.Coverage.Percentage,
		CreatedAt:   s.ProcessedAt,
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to record batch history")
	}
}

// BatchHistory lists recent batches, newest first.
func (h *Handler) BatchHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q, err := parseHistoryQuery(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if h.store == nil {
		rw.SuccessWithPagination([]store.HistoryEntry{}, &PaginationMeta{Limit: q.Limit})
		return
	}

	// One extra entry tells whether more exist.
	entries, err := h.store.ListHistory(r.Context(), q.Limit+1)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list batch history")
		rw.Error(http.StatusInternalServerError, ErrCodeStoreError, "Failed to list batch history")
		return
	}
	hasMore := len(entries) > q.Limit
	if hasMore {
		entries = entries[:q.Limit]
	}
	if entries == nil {
		entries = []store.HistoryEntry{}
	}
	rw.SuccessWithPagination(entries, &PaginationMeta{
		Count:   len(entries),
		Limit:   q.Limit,
		HasMore: hasMore,
	})
}

// BatchDownload streams a stored result file.
func (h *Handler) BatchDownload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params := downloadParams{ID: chi.URLParam(r, "id")}
	if verr := validation.ValidateStruct(&params); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	if h.store == nil {
		rw.NotFound("Result file not found")
		return
	}

	a, err := h.store.GetArtifact(r.Context(), params.ID)
	if errors.Is(err, store.ErrNotFound) {
		rw.NotFound("Result file not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("artifact_id", params.ID).Msg("Failed to load artifact")
		rw.Error(http.StatusInternalServerError, ErrCodeStoreError, "Failed to load result file")
		return
	}

	// Content-Length is left to the transport; the route may be compressed.
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Download interrupted")
	}
}
