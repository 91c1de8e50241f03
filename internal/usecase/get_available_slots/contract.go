package get_available_slots

import (
	"context"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
)

// AppointmentRepository interface of the appointment store.
type AppointmentRepository interface {
	GetActiveByPartition(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*domain.Appointment, error)
}

// DirectoryClient interface of the reference-data service.
type DirectoryClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*directory.Doctor, error)
	GetClinic(ctx context.Context, clinicID int64) (*directory.Clinic, error)
	GetService(ctx context.Context, serviceID int64) (*directory.Service, error)
	GetDoctorSchedule(ctx context.Context, doctorID, clinicID int64) (*directory.WeekSchedule, error)
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
