package move_appointment

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Request model for changing an appointment. Every field is optional; nil
// means keep the current value. A request touching only Notes is an edit,
// not a move, and skips the placement checks.
type Request struct {
	AppointmentID int64

	DoctorID        *int64
	ClinicID        *int64
	ServiceID       *int64
	Date            *time.Time
	StartTime       *types.TimeString
	DurationMinutes *int
	Notes           *string
}

// IsPlacementChange reports whether the request touches where or when the
// appointment happens.
func (r *Request) IsPlacementChange() bool {
	return r.DoctorID != nil ||
		r.ClinicID != nil ||
		r.ServiceID != nil ||
		r.Date != nil ||
		r.StartTime != nil ||
		r.DurationMinutes != nil
}

// IsEmpty reports whether the request patches nothing at all.
func (r *Request) IsEmpty() bool {
	return !r.IsPlacementChange() && r.Notes == nil
}

// Response model with the updated appointment.
type Response struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	ClinicID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	PatientName  string
	PatientPhone string
	Notes        *string

	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
