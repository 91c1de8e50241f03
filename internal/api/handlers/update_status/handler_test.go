package update_status

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentsService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

type fakeService struct {
	resp *models.AppointmentResponse
	err  error

	gotID  int64
	gotReq *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	f.gotID = id
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{resp: &models.AppointmentResponse{ID: 5, Status: "confirmed"}}

	rec := doRequest(t, svc, "/api/v1/appointments/5/status", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, "confirmed", svc.gotReq.Status)

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", appointmentsService.ErrAppointmentNotFound, http.StatusNotFound},
		{"unknown status", appointmentsService.ErrInvalidStatus, http.StatusBadRequest},
		{"illegal transition", appointmentsService.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"reason required", appointmentsService.ErrCancellationReasonRequired, http.StatusUnprocessableEntity},
		{"concurrent change", appointmentsService.ErrStatusChanged, http.StatusConflict},
		{"internal", appointmentsService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := doRequest(t, svc, "/api/v1/appointments/5/status", `{"status":"cancelled"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_InvalidAppointmentID(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/appointments/zero/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/appointments/5/status", `{"status":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/appointments/5/status", `{"status":"confirmed","force":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
