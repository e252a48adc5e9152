package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantline/eodsync/internal/importer"
	"github.com/quantline/eodsync/pkg/logger"
)

type fakeRunReader struct {
	latest *importer.Report
	byID   map[uuid.UUID]*importer.Report
}

func (f *fakeRunReader) GetLatest(context.Context) (*importer.Report, error) {
	return f.latest, nil
}

func (f *fakeRunReader) GetByID(_ context.Context, id uuid.UUID) (*importer.Report, error) {
	return f.byID[id], nil
}

func sampleReport() *importer.Report {
	return &importer.Report{
		ID:         uuid.New(),
		StartedAt:  time.Date(2020, 3, 10, 22, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2020, 3, 10, 22, 30, 0, 0, time.UTC),
		Imported: []importer.SecurityImport{
			{SecurityID: 10, Symbol: "AAPL", BarsImported: 1},
		},
		Unmatched: []importer.UnmatchedSymbol{
			{Symbol: "GHOST", ReferenceDate: time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC), Reason: "not found"},
		},
	}
}

func newTestHandler(runs RunReader) *RunHandler {
	return NewRunHandler(runs, logger.NewWithWriter(io.Discard))
}

func TestGetLatest(t *testing.T) {
	report := sampleReport()
	h := newTestHandler(&fakeRunReader{latest: report})

	rec := httptest.NewRecorder()
	h.GetLatest(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got importer.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report.ID, got.ID)
	assert.Len(t, got.Imported, 1)
	assert.Len(t, got.Unmatched, 1)
}

func TestGetLatestNoRuns(t *testing.T) {
	h := newTestHandler(&fakeRunReader{})

	rec := httptest.NewRecorder()
	h.GetLatest(rec, httptest.NewRequest(http.MethodGet, "/api/runs/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByID(t *testing.T) {
	report := sampleReport()
	h := newTestHandler(&fakeRunReader{
		byID: map[uuid.UUID]*importer.Report{report.ID: report},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/runs/"+report.ID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": report.ID.String()})

	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got importer.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report.ID, got.ID)
}

func TestGetByIDInvalid(t *testing.T) {
	h := newTestHandler(&fakeRunReader{})

	req := httptest.NewRequest(http.MethodGet, "/api/runs/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})

	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetByIDNotFound(t *testing.T) {
	h := newTestHandler(&fakeRunReader{byID: map[uuid.UUID]*importer.Report{}})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/runs/"+id.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": id.String()})

	rec := httptest.NewRecorder()
	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
