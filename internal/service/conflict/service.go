package conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Service checks a requested placement against the active appointments of
// its (doctor, clinic, date) partition. Two intervals conflict only when
// they truly overlap: a start that equals another appointment's end is a
// back-to-back booking, not a conflict.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService creates a conflict checker.
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ValidatePlacement returns a *ConflictError when [startTime, startTime+duration)
// overlaps any pending or confirmed appointment of the doctor at the clinic on
// that date. excludeID skips one appointment, so a reschedule never collides
// with its own current position; pass 0 when creating.
func (s *Service) ValidatePlacement(ctx context.Context, doctorID, clinicID int64, date time.Time, startTime types.TimeString, durationMinutes int, excludeID int64) error {
	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: ValidatePlacement - compute end time: %v", ErrInternal, err)
	}

	active, err := s.appointmentRepo.GetActiveByPartition(ctx, doctorID, clinicID, date)
	if err != nil {
		s.logger.Error("ValidatePlacement: repository error for doctor=%d clinic=%d date=%s: %v", doctorID, clinicID, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: ValidatePlacement - repository error: %w", ErrInternal, err)
	}

	for _, appt := range active {
		if appt.ID == excludeID {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			return fmt.Errorf("%w: ValidatePlacement - appointment %d end time: %v", ErrInternal, appt.ID, err)
		}

		if Overlaps(startTime, endTime, appt.StartTime, apptEnd) {
			s.logger.Warn("ValidatePlacement: slot %s-%s overlaps appointment id=%d (%s-%s)", startTime, endTime, appt.ID, appt.StartTime, apptEnd)
			return &ConflictError{WithAppointmentID: appt.ID}
		}
	}

	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
