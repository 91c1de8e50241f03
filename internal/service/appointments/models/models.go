package models

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
)

// Tabs of the appointment list view.
const (
	TabToday    = "today"
	TabUpcoming = "upcoming"
	TabPrevious = "previous"
)

// Request models

// ListAppointmentsRequest is the filtered, paginated list query.
type ListAppointmentsRequest struct {
	DoctorID  *int64  `json:"doctorId,omitempty"`
	PatientID *int64  `json:"patientId,omitempty"`
	ClinicID  *int64  `json:"clinicId,omitempty"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	Status    *string `json:"status,omitempty"`
	Tab       *string `json:"tab,omitempty"`
	Search    *string `json:"search,omitempty"`

	// Inclusive date range [StartDate, EndDate]; combines with the tab's
	// range by intersection.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// HasSearch reports whether a non-empty search term is present.
func (r *ListAppointmentsRequest) HasSearch() bool {
	return r.Search != nil && *r.Search != ""
}

// UpdateStatusRequest moves an appointment through its lifecycle.
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response models

// AppointmentResponse is the outward appointment representation.
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	DoctorID        int64  `json:"doctorId"`
	ClinicID        int64  `json:"clinicId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2025-06-10"
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "09:30"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	PatientName  string  `json:"patientName"`
	PatientPhone string  `json:"patientPhone"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse is one page of appointments.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalCount   int64                 `json:"totalCount"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
}

// Conversion helpers

// FromDomainAppointment converts a domain appointment into its DTO.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		ClinicID:        a.ClinicID,
		ServiceID:       a.ServiceID,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		PatientName:     a.PatientName,
		PatientPhone:    a.PatientPhone,
		Notes:           a.Notes,
		Revision:        a.Revision,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if end, err := a.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	if a.CancellationReason != nil {
		resp.CancellationReason = a.CancellationReason
	}
	if a.CancelledAt != nil {
		formatted := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &formatted
	}

	return resp
}

// FromDomainAppointments converts a page of domain appointments.
func FromDomainAppointments(items []*domain.Appointment, total int64, page domain.PageRequest) *AppointmentListResponse {
	responses := make([]AppointmentResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, *FromDomainAppointment(a))
	}

	return &AppointmentListResponse{
		Appointments: responses,
		TotalCount:   total,
		Page:         page.Page,
		PerPage:      page.PerPage,
	}
}
