package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	directoryClient "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
)

// UseCase creates an appointment: reference data is resolved up front, then
// the conflict check and the insert run in one serializable transaction so
// two requests for the same interval can never both commit.
type UseCase struct {
	appointmentRepo AppointmentRepository
	conflictChecker ConflictChecker
	directoryClient DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	conflictChecker ConflictChecker,
	directoryClient DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		conflictChecker: conflictChecker,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute creates a pending appointment. Any start time inside the working
// window is accepted; collisions are decided purely by interval overlap
// against the partition's active appointments.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, clinic=%d, service=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.ClinicID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Shape validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Resolve reference data
	doctor, err := uc.directoryClient.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if !doctor.IsActive {
		uc.logger.Warn("CreateAppointment: doctor id=%d is inactive", req.DoctorID)
		return nil, ErrDoctorInactive
	}

	patient, err := uc.directoryClient.GetPatient(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	if _, err := uc.directoryClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, directoryClient.ErrClinicNotFound) {
			uc.logger.Warn("CreateAppointment: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Duration: service default unless the request overrides it
	durationMinutes := service.DurationMinutes
	if req.DurationMinutes != nil {
		durationMinutes = *req.DurationMinutes
	}
	if err := validateDuration(durationMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: invalid duration %d for service id=%d", durationMinutes, req.ServiceID)
		return nil, err
	}

	// 4. Working window for the date
	schedule, err := uc.directoryClient.GetDoctorSchedule(ctx, req.DoctorID, req.ClinicID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d has no schedule at clinic id=%d", req.DoctorID, req.ClinicID)
			return nil, ErrClinicClosed
		}
		uc.logger.Error("CreateAppointment: failed to get schedule doctor=%d clinic=%d: %v", req.DoctorID, req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if err := validateWithinWindow(schedule.ForDate(req.Date), req.StartTime, durationMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: window validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Conflict check and insert under one serializable transaction; the
	// partition read locks the day's rows so concurrent bookings serialize.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.conflictChecker.ValidatePlacement(txCtx, req.DoctorID, req.ClinicID, req.Date, req.StartTime, durationMinutes, 0); err != nil {
			return err
		}

		appt := &domain.Appointment{
			PatientID:       req.PatientID,
			DoctorID:        req.DoctorID,
			ClinicID:        req.ClinicID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			PatientName:     patient.Name,
			PatientPhone:    patient.Phone,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	endTime, _ := result.EndTime()

	return &Response{
		ID:              result.ID,
		PatientID:       result.PatientID,
		DoctorID:        result.DoctorID,
		ClinicID:        result.ClinicID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		PatientName:     result.PatientName,
		PatientPhone:    result.PatientPhone,
		Notes:           result.Notes,
		Revision:        result.Revision,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
