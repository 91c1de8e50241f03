package get_doctor_day

import (
	"context"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListDoctorDay(ctx context.Context, doctorID int64, clinicID *int64, date time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
