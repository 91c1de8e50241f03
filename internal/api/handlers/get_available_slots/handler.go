package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	getAvailableSlots "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID  = "invalid doctor ID"
	msgInvalidClinicID  = "invalid clinic ID"
	msgInvalidServiceID = "invalid service ID"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgDoctorNotFound   = "doctor not found"
	msgClinicNotFound   = "clinic not found"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/clinics/{clinicId}/slots?date=YYYY-MM-DD&serviceId=N
//
// serviceId picks the duration the grid is computed for; the snake_case
// spelling service_id is also accepted.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	q := r.URL.Query()

	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /slots - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	clinicID, err := strconv.ParseInt(vars["clinicId"], 10, 64)
	if err != nil || clinicID <= 0 {
		h.logger.Warn("GET /slots - Invalid clinic ID: %s", vars["clinicId"])
		handlers.RespondBadRequest(w, msgInvalidClinicID)
		return
	}

	rawServiceID := q.Get("serviceId")
	if rawServiceID == "" {
		rawServiceID = q.Get("service_id")
	}
	serviceID, err := strconv.ParseInt(rawServiceID, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /slots - Invalid service ID: %s", rawServiceID)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %s", q.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		DoctorID:  doctorID,
		ClinicID:  clinicID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)
		case errors.Is(err, getAvailableSlots.ErrClinicNotFound):
			handlers.RespondNotFound(w, msgClinicNotFound)
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /slots - Failed to get slots: doctor=%d, clinic=%d, error=%v", doctorID, clinicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
