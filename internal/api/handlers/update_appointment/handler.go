package update_appointment

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
	msgNoChanges            = "nothing to update"
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

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		respondUseCaseError(w, h.logger, "PUT /appointments/{id}", appointmentID, err)
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment id=%d updated", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// respondUseCaseError maps move use case failures onto HTTP statuses. Shared
// with the move handler, which funnels into the same use case.
func respondUseCaseError(w http.ResponseWriter, logger Logger, route string, appointmentID int64, err error) {
	var conflictErr *conflict.ConflictError

	switch {
	case errors.As(err, &conflictErr):
		logger.Warn("%s - Conflict with appointment id=%d while moving id=%d", route, conflictErr.WithAppointmentID, appointmentID)
		handlers.RespondConflict(w, msgSlotConflict, conflictErr.WithAppointmentID)

	case errors.Is(err, txmanager.ErrTxBusy):
		logger.Warn("%s - Partition busy while moving appointment id=%d", route, appointmentID)
		handlers.RespondBusy(w, msgScheduleBusy)

	case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
		handlers.RespondNotFound(w, msgAppointmentNotFound)

	case errors.Is(err, moveAppointment.ErrNotReschedulable):
		logger.Warn("%s - Appointment id=%d is in a terminal state", route, appointmentID)
		handlers.RespondUnprocessable(w, msgNotReschedulable)

	case errors.Is(err, moveAppointment.ErrNoChanges):
		handlers.RespondBadRequest(w, msgNoChanges)

	case errors.Is(err, moveAppointment.ErrDoctorNotFound),
		errors.Is(err, moveAppointment.ErrDoctorInactive),
		errors.Is(err, moveAppointment.ErrClinicNotFound),
		errors.Is(err, moveAppointment.ErrServiceNotFound),
		errors.Is(err, moveAppointment.ErrClinicClosed),
		errors.Is(err, moveAppointment.ErrOutsideWorkingHours),
		errors.Is(err, moveAppointment.ErrInvalidDate):
		logger.Warn("%s - Rejected move for appointment id=%d: %v", route, appointmentID, err)
		handlers.RespondUnprocessable(w, err.Error())

	case errors.Is(err, moveAppointment.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		logger.Error("%s - Failed to move appointment id=%d: %v", route, appointmentID, err)
		handlers.RespondInternalError(w)
	}
}
