package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

type fakeRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeRepo) GetActiveByPartition(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func activeAppointment(id int64, start string, minutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		DoctorID:        1,
		ClinicID:        1,
		Date:            testDate,
		StartTime:       types.TimeString(start),
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestValidatePlacement_OverlapRejected(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		activeAppointment(7, "09:00", 30),
	}}
	svc := NewService(repo, nopLogger{})

	// 09:15-09:45 cuts into 09:00-09:30
	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "09:15", 30, 0)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(7), conflictErr.WithAppointmentID)
}

func TestValidatePlacement_BoundaryTouchAllowed(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		activeAppointment(7, "09:00", 30),
		activeAppointment(8, "10:00", 30),
	}}
	svc := NewService(repo, nopLogger{})

	// 09:30-10:00 ends exactly where one booking starts and starts exactly
	// where another ends: back-to-back, not a conflict
	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "09:30", 30, 0)
	assert.NoError(t, err)
}

func TestValidatePlacement_ContainedIntervalRejected(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		activeAppointment(9, "09:00", 60),
	}}
	svc := NewService(repo, nopLogger{})

	// 09:15-09:30 sits wholly inside 09:00-10:00
	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "09:15", 15, 0)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(9), conflictErr.WithAppointmentID)
}

func TestValidatePlacement_ExcludeSelf(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		activeAppointment(5, "10:00", 30),
	}}
	svc := NewService(repo, nopLogger{})

	// moving appointment 5 from 10:00 to 10:15 overlaps its own current
	// position, which must not count
	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "10:15", 30, 5)
	assert.NoError(t, err)

	// but a different appointment in the way still blocks
	err = svc.ValidatePlacement(context.Background(), 1, 1, testDate, "10:15", 30, 99)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(5), conflictErr.WithAppointmentID)
}

func TestValidatePlacement_FirstCollisionReported(t *testing.T) {
	repo := &fakeRepo{appointments: []*domain.Appointment{
		activeAppointment(3, "09:00", 30),
		activeAppointment(4, "09:30", 30),
	}}
	svc := NewService(repo, nopLogger{})

	// 09:15-09:45 overlaps both rows; the earliest one is named
	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "09:15", 30, 0)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(3), conflictErr.WithAppointmentID)
}

func TestValidatePlacement_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	err := svc.ValidatePlacement(context.Background(), 1, 1, testDate, "09:00", 30, 0)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "09:00", "09:30", "09:00", "09:30", true},
		{"partial overlap", "09:15", "09:45", "09:00", "09:30", true},
		{"contained", "09:10", "09:20", "09:00", "09:30", true},
		{"touching end to start", "09:00", "09:30", "09:30", "10:00", false},
		{"touching start to end", "09:30", "10:00", "09:00", "09:30", false},
		{"disjoint", "08:00", "08:30", "09:00", "09:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				types.TimeString(tt.aStart), types.TimeString(tt.aEnd),
				types.TimeString(tt.bStart), types.TimeString(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
