package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no row matches the id
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStatusChanged is returned when a compare-and-set status update finds
	// the row no longer in the expected status
	ErrStatusChanged = errors.New("appointment.repository: status changed concurrently")

	// ErrBuildQuery is returned when SQL construction fails
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when query execution fails
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
