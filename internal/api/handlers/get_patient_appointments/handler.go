package get_patient_appointments

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
)

const (
	msgInvalidPatientID = "invalid patient ID"
	msgInvalidPaging    = "invalid pagination parameters"
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

// Handle GET /api/v1/patients/{patientId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := strconv.ParseInt(vars["patientId"], 10, 64)
	if err != nil || patientID <= 0 {
		h.logger.Warn("GET /patients/{id}/appointments - Invalid patient ID: %s", vars["patientId"])
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		h.logger.Warn("GET /patients/{id}/appointments - Invalid paging: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}

	result, err := h.service.ListPatientAppointments(r.Context(), patientID, page)
	if err != nil {
		h.logger.Error("GET /patients/{id}/appointments - Failed for patient=%d: %v", patientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePage(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	page := domain.PageRequest{}

	var err error
	if raw := q.Get("page"); raw != "" {
		if page.Page, err = strconv.Atoi(raw); err != nil {
			return page, err
		}
	}
	if raw := q.Get("perPage"); raw != "" {
		if page.PerPage, err = strconv.Atoi(raw); err != nil {
			return page, err
		}
	}

	return page, nil
}
