package create_appointment

import "errors"

var (
	// ErrDoctorNotFound is returned when the referenced doctor does not exist.
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrDoctorInactive is returned when the doctor no longer takes appointments.
	ErrDoctorInactive = errors.New("create_appointment: doctor is not active")

	// ErrPatientNotFound is returned when the referenced patient does not exist.
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrClinicNotFound is returned when the referenced clinic does not exist.
	ErrClinicNotFound = errors.New("create_appointment: clinic not found")

	// ErrServiceNotFound is returned when the referenced service does not exist.
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidDate is returned for appointment dates in the past.
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrClinicClosed is returned when the doctor has no operating window at
	// the clinic on that date.
	ErrClinicClosed = errors.New("create_appointment: doctor does not work at this clinic on this date")

	// ErrOutsideWorkingHours is returned when the requested interval falls
	// outside the day's operating window.
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside working hours")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on internal use case failures.
	ErrInternal = errors.New("create_appointment: internal error")
)
