package list_appointments

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/api/handlers"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	appointmentsService "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

const (
	msgInvalidQueryParam = "invalid query parameter"
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

// Handle GET /api/v1/appointments
//
// Query parameters: doctorId, patientId, clinicId, serviceId, status, tab
// (today|upcoming|previous), search, startDate, endDate (inclusive range,
// snake_case spellings also accepted), page, perPage. All filters are
// optional and combine conjunctively.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParam)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidStatus),
			errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid request: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListAppointmentsRequest, error) {
	q := r.URL.Query()
	req := &models.ListAppointmentsRequest{}

	var err error
	if req.DoctorID, err = parseOptionalID(q.Get("doctorId")); err != nil {
		return nil, err
	}
	if req.PatientID, err = parseOptionalID(q.Get("patientId")); err != nil {
		return nil, err
	}
	if req.ClinicID, err = parseOptionalID(q.Get("clinicId")); err != nil {
		return nil, err
	}
	if req.ServiceID, err = parseOptionalID(q.Get("serviceId")); err != nil {
		return nil, err
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if tab := q.Get("tab"); tab != "" {
		req.Tab = &tab
	}
	if search := q.Get("search"); search != "" {
		req.Search = &search
	}

	if req.StartDate, err = parseOptionalDate(pick(q, "startDate", "start_date")); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseOptionalDate(pick(q, "endDate", "end_date")); err != nil {
		return nil, err
	}

	if page := q.Get("page"); page != "" {
		if req.Page, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
	}
	if perPage := q.Get("perPage"); perPage != "" {
		if req.PerPage, err = strconv.Atoi(perPage); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// pick returns the first parameter present under any of the given names.
func pick(q url.Values, names ...string) string {
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}
