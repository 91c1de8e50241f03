package move_appointment

import (
	"fmt"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// validateRequest checks the request shape before any lookups.
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.IsEmpty() {
		return ErrNoChanges
	}

	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.ClinicID != nil && *req.ClinicID <= 0 {
		return fmt.Errorf("%w: clinicID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate rejects dates before today.
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateWithinWindow checks that [startTime, startTime+duration) lies
// inside the day's operating window.
func validateWithinWindow(day directory.DaySchedule, startTime types.TimeString, durationMinutes int) error {
	if !day.IsOpen {
		return ErrClinicClosed
	}

	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: appointment runs past end of day", ErrOutsideWorkingHours)
	}

	if startTime.IsBefore(day.StartTime) || day.EndTime.IsBefore(endTime) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideWorkingHours, startTime, endTime, day.StartTime, day.EndTime)
	}

	return nil
}
