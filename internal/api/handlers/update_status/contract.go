package update_status

import (
	"context"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
