package delete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	appointmentsService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment ID"
	msgAppointmentNotFound  = "appointment not found"
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

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %s", vars["appointmentId"])
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.Delete(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment id=%d: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment id=%d deleted", appointmentID)
	w.WriteHeader(http.StatusNoContent)
}
