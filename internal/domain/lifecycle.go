package domain

import "errors"

var (
	// ErrInvalidTransition is returned for any status change the lifecycle
	// does not permit, including same-state no-ops and anything out of a
	// terminal state
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrCancellationReasonRequired is returned when a transition into
	// cancelled carries no reason
	ErrCancellationReasonRequired = errors.New("domain: cancellation reason is required")
)

// legalTransitions is the full lifecycle: completed and cancelled are
// terminal, and pending may be completed directly as an administrative
// override.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from → to is a legal lifecycle step.
// A same-state transition is not.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition checks the step and its side constraints: moving into
// cancelled requires a non-empty reason, which is then retained for audit.
func ValidateTransition(from, to AppointmentStatus, cancellationReason *string) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	if to == StatusCancelled && (cancellationReason == nil || *cancellationReason == "") {
		return ErrCancellationReasonRequired
	}
	return nil
}

// ParseStatus validates a wire-level status string.
func ParseStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}
