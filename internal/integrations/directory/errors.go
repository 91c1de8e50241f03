package directory

import "errors"

var (
	// ErrDoctorNotFound is returned when the referenced doctor does not exist.
	ErrDoctorNotFound = errors.New("directory client: doctor not found")

	// ErrPatientNotFound is returned when the referenced patient does not exist.
	ErrPatientNotFound = errors.New("directory client: patient not found")

	// ErrClinicNotFound is returned when the referenced clinic does not exist.
	ErrClinicNotFound = errors.New("directory client: clinic not found")

	// ErrServiceNotFound is returned when the referenced medical service does not exist.
	ErrServiceNotFound = errors.New("directory client: service not found")

	// ErrInternal is returned on internal client failures.
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse is returned when the directory service answers with
	// an unexpected status or an unparsable body.
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
