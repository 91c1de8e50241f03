package get_doctor_day

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
)

const (
	msgInvalidDoctorID = "invalid doctor ID"
	msgInvalidClinicID = "invalid clinic ID"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
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

// Handle GET /api/v1/doctors/{doctorId}/day?date=YYYY-MM-DD&clinicId=N
//
// The doctor's worklist for one date: active appointments in chronological
// order. clinicId (snake_case clinic_id also accepted) is optional and
// narrows the view to one clinic.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	q := r.URL.Query()

	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /doctors/{id}/day - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	var clinicID *int64
	rawClinicID := q.Get("clinicId")
	if rawClinicID == "" {
		rawClinicID = q.Get("clinic_id")
	}
	if rawClinicID != "" {
		id, err := strconv.ParseInt(rawClinicID, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /doctors/{id}/day - Invalid clinic ID: %s", rawClinicID)
			handlers.RespondBadRequest(w, msgInvalidClinicID)
			return
		}
		clinicID = &id
	}

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/day - Invalid date: %s", q.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListDoctorDay(r.Context(), doctorID, clinicID, date)
	if err != nil {
		h.logger.Error("GET /doctors/{id}/day - Failed for doctor=%d date=%s: %v",
			doctorID, date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
