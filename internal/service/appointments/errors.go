package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned when the requested status is not a known one.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition is returned when the lifecycle forbids the change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCancellationReasonRequired is returned when cancelling without a reason.
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")

	// ErrStatusChanged is returned when the appointment changed status
	// concurrently and the requested transition no longer applies.
	ErrStatusChanged = errors.New("appointment status changed concurrently")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
