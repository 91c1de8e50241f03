package domain

// Scheduling defaults
const (
	// SlotGranularityMinutes is the fixed candidate-slot step of the
	// availability grid, independent of service durations
	SlotGranularityMinutes = 30

	DefaultPageSize = 15
	MaxPageSize     = 100
)

// Business validation constants
const (
	MinDurationMinutes          = 1
	MaxDurationMinutes          = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSearchLength             = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses occupy their slot and take part in conflict checks
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses permit no further transition
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}
