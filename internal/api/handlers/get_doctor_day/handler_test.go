package get_doctor_day

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

type fakeService struct {
	gotDoctorID int64
	gotClinicID *int64
	gotDate     time.Time
}

func (f *fakeService) ListDoctorDay(_ context.Context, doctorID int64, clinicID *int64, date time.Time) (*models.AppointmentListResponse, error) {
	f.gotDoctorID = doctorID
	f.gotClinicID = clinicID
	f.gotDate = date
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/doctors/{doctorId}/day", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ClinicScopeReachesService(t *testing.T) {
	svc := &fakeService{}

	rec := doRequest(t, svc, "/api/v1/doctors/2/day?date=2025-06-10&clinic_id=3")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(2), svc.gotDoctorID)
	require.NotNil(t, svc.gotClinicID)
	assert.Equal(t, int64(3), *svc.gotClinicID)
	assert.True(t, svc.gotDate.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
}

func TestHandle_ClinicOptional(t *testing.T) {
	svc := &fakeService{}

	rec := doRequest(t, svc, "/api/v1/doctors/2/day?date=2025-06-10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.gotClinicID)
}

func TestHandle_InvalidClinicRejected(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/doctors/2/day?date=2025-06-10&clinicId=three")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDateRejected(t *testing.T) {
	rec := doRequest(t, &fakeService{}, "/api/v1/doctors/2/day?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
