package create_appointment

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	createAppointment "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/create_appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	ClinicID        int64   `json:"clinicId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`      // "2025-06-10"
	StartTime       string  `json:"startTime"` // "09:00"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	PatientID       int64   `json:"patientId"`
	DoctorID        int64   `json:"doctorId"`
	ClinicID        int64   `json:"clinicId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	PatientName     string  `json:"patientName"`
	PatientPhone    string  `json:"patientPhone"`
	Notes           *string `json:"notes,omitempty"`
	Revision        int64   `json:"revision"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID:       r.PatientID,
		DoctorID:        r.DoctorID,
		ClinicID:        r.ClinicID,
		ServiceID:       r.ServiceID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		DoctorID:        resp.DoctorID,
		ClinicID:        resp.ClinicID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		PatientName:     resp.PatientName,
		PatientPhone:    resp.PatientPhone,
		Notes:           resp.Notes,
		Revision:        resp.Revision,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
