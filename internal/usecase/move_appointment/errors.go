package move_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrNotReschedulable is returned when the appointment sits in a terminal
	// state and can no longer be changed.
	ErrNotReschedulable = errors.New("move_appointment: appointment can no longer be changed")

	// ErrNoChanges is returned when the request patches nothing.
	ErrNoChanges = errors.New("move_appointment: nothing to update")

	// ErrDoctorNotFound is returned when the new doctor does not exist.
	ErrDoctorNotFound = errors.New("move_appointment: doctor not found")

	// ErrDoctorInactive is returned when the new doctor no longer takes appointments.
	ErrDoctorInactive = errors.New("move_appointment: doctor is not active")

	// ErrClinicNotFound is returned when the new clinic does not exist.
	ErrClinicNotFound = errors.New("move_appointment: clinic not found")

	// ErrServiceNotFound is returned when the new service does not exist.
	ErrServiceNotFound = errors.New("move_appointment: service not found")

	// ErrInvalidDate is returned for new dates in the past.
	ErrInvalidDate = errors.New("move_appointment: invalid appointment date")

	// ErrClinicClosed is returned when the doctor has no operating window at
	// the clinic on the new date.
	ErrClinicClosed = errors.New("move_appointment: doctor does not work at this clinic on this date")

	// ErrOutsideWorkingHours is returned when the new interval falls outside
	// the day's operating window.
	ErrOutsideWorkingHours = errors.New("move_appointment: time is outside working hours")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrInternal is returned on internal use case failures.
	ErrInternal = errors.New("move_appointment: internal error")
)
