package move_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/conflict"
	moveAppointment "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/move_appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/txmanager"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDateOrTime    = "invalid date or start time format, expected YYYY-MM-DD and HH:MM"
	msgAppointmentNotFound  = "appointment not found"
	msgSlotConflict         = "requested time overlaps an existing appointment"
	msgNotReschedulable     = "appointment can no longer be changed"
	msgScheduleBusy         = "schedule is busy, please retry"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PUT /appointments/{id}/move - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/move - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *conflict.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PUT /appointments/{id}/move - Conflict with appointment id=%d while moving id=%d",
				conflictErr.WithAppointmentID, appointmentID)
			handlers.RespondConflict(w, msgSlotConflict, conflictErr.WithAppointmentID)

		case errors.Is(err, txmanager.ErrTxBusy):
			h.logger.Warn("PUT /appointments/{id}/move - Partition busy for appointment id=%d", appointmentID)
			handlers.RespondBusy(w, msgScheduleBusy)

		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, moveAppointment.ErrNotReschedulable):
			h.logger.Warn("PUT /appointments/{id}/move - Appointment id=%d is in a terminal state", appointmentID)
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, moveAppointment.ErrDoctorNotFound),
			errors.Is(err, moveAppointment.ErrDoctorInactive),
			errors.Is(err, moveAppointment.ErrClinicNotFound),
			errors.Is(err, moveAppointment.ErrClinicClosed),
			errors.Is(err, moveAppointment.ErrOutsideWorkingHours),
			errors.Is(err, moveAppointment.ErrInvalidDate):
			h.logger.Warn("PUT /appointments/{id}/move - Rejected move for appointment id=%d: %v", appointmentID, err)
			handlers.RespondUnprocessable(w, err.Error())

		case errors.Is(err, moveAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id}/move - Failed to move appointment id=%d: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/move - Appointment id=%d moved to %s %s",
		appointmentID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
