package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	appointmentsService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidRequestBody   = "invalid request body"
	msgAppointmentNotFound  = "appointment not found"
	msgInvalidStatus        = "unknown appointment status"
	msgInvalidTransition    = "status transition is not allowed"
	msgReasonRequired       = "cancellation requires a reason"
	msgStatusChanged        = "appointment was changed concurrently, please retry"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PUT /appointments/{id}/status - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("PUT /appointments/{id}/status - Invalid status %q for id=%d", req.Status, appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PUT /appointments/{id}/status - Illegal transition to %q for id=%d", req.Status, appointmentID)
			handlers.RespondUnprocessable(w, msgInvalidTransition)

		case errors.Is(err, appointmentsService.ErrCancellationReasonRequired):
			handlers.RespondUnprocessable(w, msgReasonRequired)

		case errors.Is(err, appointmentsService.ErrStatusChanged):
			h.logger.Warn("PUT /appointments/{id}/status - Concurrent change on id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgStatusChanged)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id}/status - Failed to update status for id=%d: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/status - Appointment id=%d is now %s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
