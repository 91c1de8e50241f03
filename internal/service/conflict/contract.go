package conflict

import (
	"context"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
)

// AppointmentRepository is the slice of the appointment store the checker
// needs: the active rows of one (doctor, clinic, date) partition.
type AppointmentRepository interface {
	GetActiveByPartition(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*domain.Appointment, error)
}

// Logger minimal logging interface for the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
