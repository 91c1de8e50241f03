package move_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	appointmentRepo "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/infra/storage/appointment"
	directoryClient "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/notify"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// UseCase changes an appointment: a reschedule (new doctor, clinic, date,
// time or duration) re-runs the placement checks with the appointment itself
// excluded from the conflict scan, all inside one serializable transaction.
// A notes-only edit skips the placement machinery entirely.
type UseCase struct {
	appointmentRepo AppointmentRepository
	conflictChecker ConflictChecker
	directoryClient DirectoryClient
	notifyClient    NotifyClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	conflictChecker ConflictChecker,
	directoryClient DirectoryClient,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		conflictChecker: conflictChecker,
		directoryClient: directoryClient,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute applies the requested changes and returns the updated appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: appointment=%d", req.AppointmentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		return nil, err
	}

	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("MoveAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("MoveAppointment: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// Notes edits are allowed in any state and never collide with anything.
	if !req.IsPlacementChange() {
		return uc.updateNotes(ctx, req)
	}

	if !appt.CanBeRescheduled() {
		uc.logger.Warn("MoveAppointment: appointment id=%d is %s and cannot be changed", appt.ID, appt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrNotReschedulable, appt.Status)
	}

	target, serviceName, err := uc.resolveTarget(ctx, appt, req)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		if err := validateDate(*req.Date, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("MoveAppointment: new date %s is in the past", req.Date.Format(domain.DateFormat))
			return nil, err
		}
	}

	schedule, err := uc.directoryClient.GetDoctorSchedule(ctx, target.DoctorID, target.ClinicID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrDoctorNotFound) {
			uc.logger.Warn("MoveAppointment: doctor id=%d has no schedule at clinic id=%d", target.DoctorID, target.ClinicID)
			return nil, ErrClinicClosed
		}
		uc.logger.Error("MoveAppointment: failed to get schedule doctor=%d clinic=%d: %v", target.DoctorID, target.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if err := validateWithinWindow(schedule.ForDate(target.Date), target.StartTime, target.DurationMinutes); err != nil {
		uc.logger.Warn("MoveAppointment: window validation failed: %v", err)
		return nil, err
	}

	patch := appointmentRepo.UpdatePatch{
		DoctorID:        req.DoctorID,
		ClinicID:        req.ClinicID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		ServiceName:     serviceName,
		Notes:           req.Notes,
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Re-read under the transaction: the appointment may have reached a
		// terminal state since the optimistic check above.
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		if !current.CanBeRescheduled() {
			return fmt.Errorf("%w: status is %s", ErrNotReschedulable, current.Status)
		}

		if err := uc.conflictChecker.ValidatePlacement(txCtx, target.DoctorID, target.ClinicID, target.Date, target.StartTime, target.DurationMinutes, current.ID); err != nil {
			return err
		}

		updated, err := uc.appointmentRepo.Update(txCtx, req.AppointmentID, patch)
		if err != nil {
			uc.logger.Error("MoveAppointment: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("MoveAppointment: appointment id=%d moved to %s %s", result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	uc.notifyClient.Send(ctx, notify.Event{
		Type:          notify.EventRescheduled,
		AppointmentID: result.ID,
		PatientID:     result.PatientID,
		DoctorID:      result.DoctorID,
		Date:          result.Date.Format(domain.DateFormat),
		StartTime:     result.StartTime,
		OccurredAt:    uc.timeProvider.Now(),
	})

	return toResponse(result), nil
}

// placement is the appointment's position after the move.
type placement struct {
	DoctorID        int64
	ClinicID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// resolveTarget merges the request over the current appointment and validates
// any changed references against the directory. It returns the denormalized
// service name when the service changes.
func (uc *UseCase) resolveTarget(ctx context.Context, appt *domain.Appointment, req *Request) (placement, *string, error) {
	target := placement{
		DoctorID:        appt.DoctorID,
		ClinicID:        appt.ClinicID,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		DurationMinutes: appt.DurationMinutes,
	}

	var serviceName *string

	if req.DoctorID != nil && *req.DoctorID != appt.DoctorID {
		doctor, err := uc.directoryClient.GetDoctor(ctx, *req.DoctorID)
		if err != nil {
			if errors.Is(err, directoryClient.ErrDoctorNotFound) {
				return target, nil, ErrDoctorNotFound
			}
			return target, nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
		}
		if !doctor.IsActive {
			return target, nil, ErrDoctorInactive
		}
	}
	if req.DoctorID != nil {
		target.DoctorID = *req.DoctorID
	}

	if req.ClinicID != nil && *req.ClinicID != appt.ClinicID {
		if _, err := uc.directoryClient.GetClinic(ctx, *req.ClinicID); err != nil {
			if errors.Is(err, directoryClient.ErrClinicNotFound) {
				return target, nil, ErrClinicNotFound
			}
			return target, nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
		}
	}
	if req.ClinicID != nil {
		target.ClinicID = *req.ClinicID
	}

	if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
		service, err := uc.directoryClient.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, directoryClient.ErrServiceNotFound) {
				return target, nil, ErrServiceNotFound
			}
			return target, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceName = &service.Name
		// A new service brings its own default length unless the request
		// pins one explicitly.
		if req.DurationMinutes == nil {
			target.DurationMinutes = service.DurationMinutes
			req.DurationMinutes = &service.DurationMinutes
		}
	}

	if req.Date != nil {
		target.Date = *req.Date
	}
	if req.StartTime != nil {
		target.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		target.DurationMinutes = *req.DurationMinutes
	}

	return target, serviceName, nil
}

func (uc *UseCase) updateNotes(ctx context.Context, req *Request) (*Response, error) {
	updated, err := uc.appointmentRepo.Update(ctx, req.AppointmentID, appointmentRepo.UpdatePatch{Notes: req.Notes})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("MoveAppointment: failed to update notes for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to update notes: %v", ErrInternal, err)
	}

	uc.logger.Info("MoveAppointment: updated notes for appointment id=%d", updated.ID)
	return toResponse(updated), nil
}

func toResponse(a *domain.Appointment) *Response {
	endTime, _ := a.EndTime()

	return &Response{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		ClinicID:        a.ClinicID,
		ServiceID:       a.ServiceID,
		Date:            a.Date,
		StartTime:       a.StartTime,
		EndTime:         endTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		PatientName:     a.PatientName,
		PatientPhone:    a.PatientPhone,
		Notes:           a.Notes,
		Revision:        a.Revision,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
