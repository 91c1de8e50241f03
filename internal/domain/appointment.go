package domain

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit for one doctor at one clinic
type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	ClinicID  int64
	ServiceID int64

	Date            time.Time // calendar day, clinic-local
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized reference data captured at booking time, kept for history
	// and for free-text search over the list views
	ServiceName  string
	PatientName  string
	PatientPhone string

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	// Revision advances on every successful mutation
	Revision int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true once no further transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeRescheduled returns true if the date/time/placement may still change
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment may move to cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the occupied interval.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}
