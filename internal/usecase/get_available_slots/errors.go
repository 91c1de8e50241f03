package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound is returned when the doctor does not exist.
	ErrDoctorNotFound = errors.New("get_available_slots: doctor not found")

	// ErrClinicNotFound is returned when the clinic does not exist.
	ErrClinicNotFound = errors.New("get_available_slots: clinic not found")

	// ErrServiceNotFound is returned when the service does not exist.
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal use case failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
