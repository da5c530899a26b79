// File path: internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/common"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/esg"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/report"
	"github.com/HDCLABS-NOVA/ai01-2nd-BeReal-ESG-AI-Agent/internal/store"
)

// handleSubmitData merges a JSON field fragment into the stored run context
// and tells the caller which required fields are still owed, so any front end
// can drive its own prompt loop.
func (s *Server) handleSubmitData(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		logger.Warn("api: submit decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("payload must contain at least one field"))
		return
	}
	if err := s.store.MergeFields(ctx, fields); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	missing, err := s.missingFields(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: data submitted", "fields", len(fields), "missing", len(missing))
	writeJSON(w, http.StatusOK, submitDataResponse{Status: "stored", Stored: len(fields), Missing: missing})
}

func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearFields(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: run context cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleUploadArtifact stores supplementary evidence alongside the run. The
// file is kept verbatim; the engine never parses it.
func (s *Server) handleUploadArtifact(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	const maxMemory = 32 << 20 // 32 MiB of in-memory file parts
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		logger.Warn("api: artifact form parse failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload form: %w", err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file field required: %w", err))
		return
	}
	defer file.Close()

	id := uuid.NewString()
	filename := filepath.Base(header.Filename)
	destPath := filepath.Join(s.uploadRoot, id+"-"+filename)
	dest, err := os.Create(destPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("create upload file: %w", err))
		return
	}
	size, err := io.Copy(dest, file)
	closeErr := dest.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(destPath)
		writeError(w, http.StatusInternalServerError, fmt.Errorf("write upload file: %w", err))
		return
	}

	artifact := store.Artifact{
		ID:        id,
		Filename:  filename,
		Path:      destPath,
		SizeBytes: size,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveArtifact(ctx, artifact); err != nil {
		os.Remove(destPath)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: artifact uploaded", "id", id, "filename", filename, "size", size)
	writeJSON(w, http.StatusOK, uploadArtifactResponse{
		Status:    "uploaded",
		ID:        id,
		Filename:  filename,
		SizeBytes: size,
	})
}

// handleGenerateReport merges the stored context with an optional inline
// fragment and runs one assembly. Inline values win but are not persisted,
// mirroring how one-shot overrides worked for script callers.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()

	payload, err := s.store.PayloadJSON(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	merged := payload
	if r.Body != nil {
		body, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("read request body: %w", readErr))
			return
		}
		if len(body) > 0 {
			merged, err = mergeJSONObjects(payload, body)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		}
	}

	rec, err := esg.ParsePayload(merged)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, diags, err := report.Assemble(rec, s.opts)
	if err != nil {
		var verr *esg.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
				Error:   verr.Error(),
				Missing: verr.Missing,
				Invalid: verr.Invalid,
			})
			return
		}
		writeError(w, statusForAssemblyError(err), err)
		return
	}
	if diags == nil {
		diags = []report.Diagnostic{}
	}
	logger.Info("api: report generated", "sections", len(doc.Sections), "diagnostics", len(diags))
	writeJSON(w, http.StatusOK, generateReportResponse{Document: doc, Diagnostics: diags})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fields, err := s.store.Fields(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	artifacts, err := s.store.Artifacts(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	decoded := make(map[string]interface{}, len(fields))
	for key, raw := range fields {
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		decoded[key] = value
	}
	if artifacts == nil {
		artifacts = []store.Artifact{}
	}
	writeJSON(w, http.StatusOK, contextResponse{Fields: decoded, Artifacts: artifacts})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	if entries == nil {
		entries = []common.LogEntry{}
	}
	writeJSON(w, http.StatusOK, logsResponse{Entries: entries})
}

func (s *Server) missingFields(r *http.Request) ([]string, error) {
	payload, err := s.store.PayloadJSON(r.Context())
	if err != nil {
		return nil, err
	}
	rec, err := esg.ParsePayload(payload)
	if err != nil {
		// Stored fragments may be partial or still malformed; the required
		// list is then everything.
		return append([]string(nil), esg.RequiredFields...), nil
	}
	return esg.MissingRequiredFields(rec), nil
}

func mergeJSONObjects(base, override []byte) ([]byte, error) {
	merged := make(map[string]json.RawMessage)
	if len(base) > 0 {
		if err := json.Unmarshal(base, &merged); err != nil {
			return nil, fmt.Errorf("decode stored context: %w", err)
		}
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal(override, &extra); err != nil {
		return nil, fmt.Errorf("decode inline payload: %w", err)
	}
	for key, value := range extra {
		merged[key] = value
	}
	return json.Marshal(merged)
}
