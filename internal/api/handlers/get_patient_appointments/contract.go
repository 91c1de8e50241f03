package get_patient_appointments

import (
	"context"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListPatientAppointments(ctx context.Context, patientID int64, page domain.PageRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
