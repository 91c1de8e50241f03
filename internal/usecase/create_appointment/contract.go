package create_appointment

import (
	"context"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// AppointmentRepository interface of the appointment store.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ConflictChecker validates a placement against the partition's active
// appointments.
type ConflictChecker interface {
	ValidatePlacement(ctx context.Context, doctorID, clinicID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeID int64) error
}

// DirectoryClient interface of the reference-data service.
type DirectoryClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*directory.Doctor, error)
	GetPatient(ctx context.Context, patientID int64) (*directory.Patient, error)
	GetClinic(ctx context.Context, clinicID int64) (*directory.Clinic, error)
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	GetDoctorSchedule(ctx context.Context, doctorID, clinicID int64) (*directory.WeekSchedule, error)
}

// TransactionManager interface for transaction control.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time; tests substitute a fixed clock.
type TimeProvider interface {
	Now() time.Time
}

// Logger minimal logging interface for the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
