package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/quantline/eodsync/internal/importer"
	"github.com/quantline/eodsync/pkg/logger"
)

// RunReader reads stored import run reports.
type RunReader interface {
	GetLatest(ctx context.Context) (*importer.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*importer.Report, error)
}

// RunHandler serves import run reports.
type RunHandler struct {
	runs   RunReader
	logger *logger.Logger
}

// NewRunHandler creates a RunHandler.
func NewRunHandler(runs RunReader, log *logger.Logger) *RunHandler {
	return &RunHandler{
		runs:   runs,
		logger: log.WithField("module", "api"),
	}
}

// GetLatest returns the most recent import run report.
func (h *RunHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	report, err := h.runs.GetLatest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		writeError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "no import runs recorded")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetByID returns the import run report with the given id.
func (h *RunHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	report, err := h.runs.GetByID(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load run")
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
