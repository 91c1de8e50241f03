package conflict

import (
	"errors"
	"fmt"
)

// ErrInternal is returned on repository or time-arithmetic failures.
var ErrInternal = errors.New("conflict service: internal error")

// ConflictError reports that a requested placement overlaps an existing
// active appointment. WithAppointmentID names the first colliding row.
type ConflictError struct {
	WithAppointmentID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict service: time slot overlaps appointment %d", e.WithAppointmentID)
}
