package appointments

import (
	"context"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/infra/storage/appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/notify"
)

// AppointmentRepository is the appointment store contract.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter, sort domain.SortMode, page domain.PageRequest) ([]*domain.Appointment, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, cancellationReason *string) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// NotifyClient delivers appointment events, best-effort.
type NotifyClient interface {
	Send(ctx context.Context, event notify.Event)
}

// Logger minimal logging interface for the service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider supplies the current time; tests substitute a fixed clock.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

var _ AppointmentRepository = (*appointment.Repository)(nil)
