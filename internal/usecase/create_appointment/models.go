package create_appointment

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Request model for creating an appointment.
type Request struct {
	PatientID       int64            // patient being seen
	DoctorID        int64            // doctor giving the appointment
	ClinicID        int64            // clinic where it takes place
	ServiceID       int64            // booked medical service
	Date            time.Time        // appointment date (no time part)
	StartTime       types.TimeString // start of the interval, e.g. "09:00"
	DurationMinutes *int             // optional override of the service duration
	Notes           *string          // optional free-form notes
}

// Response model with the created appointment.
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

	// Denormalized reference data
	ServiceName  string
	PatientName  string
	PatientPhone string
	Notes        *string

	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
