package create_appointment

import (
	"errors"
	"net/http"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/conflict"
	createAppointment "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/create_appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/txmanager"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDateOrTime   = "invalid date or start time format, expected YYYY-MM-DD and HH:MM"
	msgSlotConflict        = "requested time overlaps an existing appointment"
	msgDoctorNotFound      = "doctor not found"
	msgDoctorInactive      = "doctor is not taking appointments"
	msgPatientNotFound     = "patient not found"
	msgClinicNotFound      = "clinic not found"
	msgServiceNotFound     = "service not found"
	msgClinicClosed        = "doctor does not work at this clinic on the requested date"
	msgOutsideWorkingHours = "requested time is outside working hours"
	msgInvalidDate         = "appointment date must not be in the past"
	msgScheduleBusy        = "schedule is busy, please retry"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *conflict.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /appointments - Conflict with appointment id=%d: doctor=%d, date=%s",
				conflictErr.WithAppointmentID, req.DoctorID, req.Date)
			handlers.RespondConflict(w, msgSlotConflict, conflictErr.WithAppointmentID)

		case errors.Is(err, txmanager.ErrTxBusy):
			h.logger.Warn("POST /appointments - Partition busy: doctor=%d, date=%s", req.DoctorID, req.Date)
			handlers.RespondBusy(w, msgScheduleBusy)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			handlers.RespondUnprocessable(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrDoctorInactive):
			handlers.RespondUnprocessable(w, msgDoctorInactive)

		case errors.Is(err, createAppointment.ErrPatientNotFound):
			handlers.RespondUnprocessable(w, msgPatientNotFound)

		case errors.Is(err, createAppointment.ErrClinicNotFound):
			handlers.RespondUnprocessable(w, msgClinicNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			handlers.RespondUnprocessable(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrClinicClosed):
			handlers.RespondUnprocessable(w, msgClinicClosed)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			handlers.RespondUnprocessable(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			handlers.RespondUnprocessable(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient=%d, doctor=%d, error=%v",
				req.PatientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, patient=%d, doctor=%d",
		result.ID, req.PatientID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
