package move_appointment

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	moveAppointment "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/usecase/move_appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// MoveAppointmentRequest HTTP request model: the new position. Date and
// start time are required; doctor and clinic only when the appointment
// changes hands.
type MoveAppointmentRequest struct {
	Date      string `json:"date"`      // "2025-06-10"
	StartTime string `json:"startTime"` // "09:00"
	DoctorID  *int64 `json:"doctorId,omitempty"`
	ClinicID  *int64 `json:"clinicId,omitempty"`
}

// MovedAppointmentResponse HTTP response model
type MovedAppointmentResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	DoctorID        int64  `json:"doctorId"`
	ClinicID        int64  `json:"clinicId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Revision        int64  `json:"revision"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *MoveAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*moveAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &moveAppointment.Request{
		AppointmentID: appointmentID,
		Date:          &date,
		StartTime:     &startTime,
		DoctorID:      r.DoctorID,
		ClinicID:      r.ClinicID,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response.
func FromUseCaseResponse(resp *moveAppointment.Response) *MovedAppointmentResponse {
	return &MovedAppointmentResponse{
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
		Revision:        resp.Revision,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
