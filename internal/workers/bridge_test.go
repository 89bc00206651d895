package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

type stubReporter struct {
	recorded []models.WorkerMessage
	status   models.SyncStatus
}

func (s *stubReporter) RecordWorkerResult(msg models.WorkerMessage) {
	s.recorded = append(s.recorded, msg)
}

func (s *stubReporter) Status(context.Context) models.SyncStatus {
	return s.status
}

func newBridge(reporter *stubReporter) http.Handler {
	return NewBridgeWorker("127.0.0.1:0", reporter, logger.Nop()).routes()
}

func TestBridge_CompletionReportIsRecorded(t *testing.T) {
	reporter := &stubReporter{}
	handler := newBridge(reporter)

	body := `{"type":"BACKGROUND_SYNC_COMPLETED","successCount":3,"failCount":1}`
	req := httptest.NewRequest(http.MethodPost, "/v1/background-sync/complete", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, reporter.recorded, 1)
	assert.Equal(t, 3, reporter.recorded[0].SuccessCount)
	assert.Equal(t, 1, reporter.recorded[0].FailCount)
}

func TestBridge_UnknownMessageTypeIsIgnored(t *testing.T) {
	reporter := &stubReporter{}
	handler := newBridge(reporter)

	req := httptest.NewRequest(http.MethodPost, "/v1/background-sync/complete",
		strings.NewReader(`{"type":"SOMETHING_ELSE"}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, reporter.recorded)
}

func TestBridge_MalformedBodyIsRejected(t *testing.T) {
	reporter := &stubReporter{}
	handler := newBridge(reporter)

	req := httptest.NewRequest(http.MethodPost, "/v1/background-sync/complete",
		strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBridge_StatusEndpoint(t *testing.T) {
	reporter := &stubReporter{status: models.SyncStatus{
		Online:  true,
		Pending: 2,
		LastRun: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}}
	handler := newBridge(reporter)

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SyncStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Online)
	assert.Equal(t, 2, status.Pending)
}

func TestWorkers_RunsAll(t *testing.T) {
	ran := 0
	w := NewWorkers(workerFunc(func() { ran++ }), workerFunc(func() { ran++ }))
	w.Run()
	assert.Equal(t, 2, ran)
}

type workerFunc func()

func (f workerFunc) Run() { f() }
