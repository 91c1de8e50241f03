package get_available_slots

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Request model for the slot grid of one doctor at one clinic on one date,
// for one service.
type Request struct {
	DoctorID  int64
	ClinicID  int64
	ServiceID int64
	Date      time.Time // date only, no time part
}

// Response model with the day's slot grid.
type Response struct {
	Date            time.Time
	DoctorID        int64
	ClinicID        int64
	ServiceID       int64
	DurationMinutes int
	Slots           []Slot
}

// Slot is one grid cell of the day: the interval the service would occupy
// if booked at the cell's start.
type Slot struct {
	StartTime       types.TimeString // e.g. "09:00"
	EndTime         types.TimeString // e.g. "10:00" for a 60-minute service
	DurationMinutes int
	Available       bool
}
