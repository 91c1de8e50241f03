package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/conflict"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

type fakeRepo struct {
	created *domain.Appointment
	nextID  int64
}

func (f *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	appt.Revision = 1
	appt.CreatedAt = time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
}

type fakeConflictChecker struct {
	err error

	gotStart    types.TimeString
	gotDuration int
	gotExclude  int64
}

func (f *fakeConflictChecker) ValidatePlacement(_ context.Context, _, _ int64, _ time.Time, startTime types.TimeString, durationMinutes int, excludeID int64) error {
	f.gotStart = startTime
	f.gotDuration = durationMinutes
	f.gotExclude = excludeID
	return f.err
}

type fakeDirectory struct {
	doctor      *directory.Doctor
	doctorErr   error
	patientErr  error
	clinicErr   error
	service     *directory.Service
	serviceErr  error
	schedule    *directory.WeekSchedule
	scheduleErr error
}

func (f *fakeDirectory) GetDoctor(_ context.Context, id int64) (*directory.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	if f.doctor != nil {
		return f.doctor, nil
	}
	return &directory.Doctor{ID: id, Name: "Dr. Salem", IsActive: true}, nil
}

func (f *fakeDirectory) GetPatient(_ context.Context, id int64) (*directory.Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return &directory.Patient{ID: id, Name: "Omar Farouk", Phone: "+201001234567"}, nil
}

func (f *fakeDirectory) GetClinic(_ context.Context, id int64) (*directory.Clinic, error) {
	if f.clinicErr != nil {
		return nil, f.clinicErr
	}
	return &directory.Clinic{ID: id, Name: "Downtown", IsActive: true}, nil
}

func (f *fakeDirectory) GetService(_ context.Context, id int64) (*directory.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	if f.service != nil {
		return f.service, nil
	}
	return &directory.Service{ID: id, Name: "Consultation", DurationMinutes: 30}, nil
}

func (f *fakeDirectory) GetDoctorSchedule(_ context.Context, _, _ int64) (*directory.WeekSchedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	if f.schedule != nil {
		return f.schedule, nil
	}
	return &directory.WeekSchedule{Days: map[string]directory.DaySchedule{
		"tuesday": {IsOpen: true, StartTime: "09:00", EndTime: "17:00"},
	}}, nil
}

// passthroughTxManager runs the function without any real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-06-10 is a Tuesday.
var tuesday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func newUseCase(repo *fakeRepo, checker *fakeConflictChecker, dir *fakeDirectory) *UseCase {
	uc := NewUseCase(repo, checker, dir, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		PatientID: 10,
		DoctorID:  1,
		ClinicID:  1,
		ServiceID: 3,
		Date:      tuesday,
		StartTime: "09:15",
	}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	repo := &fakeRepo{}
	checker := &fakeConflictChecker{}
	uc := newUseCase(repo, checker, &fakeDirectory{})

	// 09:15 is off the half-hour grid on purpose: placement is free-form,
	// only true overlap blocks it
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("09:15"), resp.StartTime)
	assert.Equal(t, types.TimeString("09:45"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)

	// denormalized reference data travels with the row
	assert.Equal(t, "Consultation", repo.created.ServiceName)
	assert.Equal(t, "Omar Farouk", repo.created.PatientName)
	assert.Equal(t, "+201001234567", repo.created.PatientPhone)

	// creation never excludes anything from the conflict scan
	assert.Equal(t, int64(0), checker.gotExclude)
	assert.Equal(t, 30, checker.gotDuration)
}

func TestExecute_ConflictPropagates(t *testing.T) {
	checker := &fakeConflictChecker{err: &conflict.ConflictError{WithAppointmentID: 42}}
	uc := newUseCase(&fakeRepo{}, checker, &fakeDirectory{})

	_, err := uc.Execute(context.Background(), validRequest())

	var conflictErr *conflict.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(42), conflictErr.WithAppointmentID)
}

func TestExecute_DurationOverride(t *testing.T) {
	repo := &fakeRepo{}
	checker := &fakeConflictChecker{}
	uc := newUseCase(repo, checker, &fakeDirectory{})

	override := 45
	req := validRequest()
	req.DurationMinutes = &override

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, 45, checker.gotDuration)
}

func TestExecute_UnknownReferences(t *testing.T) {
	tests := []struct {
		name    string
		dir     *fakeDirectory
		wantErr error
	}{
		{"doctor", &fakeDirectory{doctorErr: directory.ErrDoctorNotFound}, ErrDoctorNotFound},
		{"patient", &fakeDirectory{patientErr: directory.ErrPatientNotFound}, ErrPatientNotFound},
		{"clinic", &fakeDirectory{clinicErr: directory.ErrClinicNotFound}, ErrClinicNotFound},
		{"service", &fakeDirectory{serviceErr: directory.ErrServiceNotFound}, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, tt.dir)
			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_InactiveDoctor(t *testing.T) {
	dir := &fakeDirectory{doctor: &directory.Doctor{ID: 1, Name: "Dr. Retired", IsActive: false}}
	uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, dir)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDoctorInactive)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, &fakeDirectory{})

	req := validRequest()
	req.Date = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	dir := &fakeDirectory{schedule: &directory.WeekSchedule{Days: map[string]directory.DaySchedule{
		"tuesday": {IsOpen: false},
	}}}
	uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, dir)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClinicClosed)
}

func TestExecute_OutsideWorkingHoursRejected(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, &fakeDirectory{})

	req := validRequest()
	req.StartTime = "16:45" // 16:45-17:15 runs past the 17:00 close

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeRepo{}, &fakeConflictChecker{}, &fakeDirectory{})

	req := validRequest()
	req.StartTime = "quarter past nine"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
