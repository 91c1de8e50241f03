package notify

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// EventType names the appointment changes the gateway is told about.
type EventType string

const (
	EventConfirmed   EventType = "appointment.confirmed"
	EventCancelled   EventType = "appointment.cancelled"
	EventCompleted   EventType = "appointment.completed"
	EventRescheduled EventType = "appointment.rescheduled"
)

// Event is the notification payload for one appointment change.
type Event struct {
	Type          EventType        `json:"type"`
	AppointmentID int64            `json:"appointment_id"`
	PatientID     int64            `json:"patient_id"`
	DoctorID      int64            `json:"doctor_id"`
	Date          string           `json:"date"`
	StartTime     types.TimeString `json:"start_time"`
	Reason        *string          `json:"reason,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}
