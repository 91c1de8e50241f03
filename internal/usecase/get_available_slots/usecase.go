package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	directoryClient "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/directory"
)

// UseCase computes the slot grid of one doctor at one clinic for one date
// and service: candidate starts at fixed half-hour steps across the day's
// operating window, each marked available only if the service's full
// duration fits there without overlapping an active appointment or running
// past the window's end.
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute returns the day's slot grid. Days the doctor does not work, and
// dates already past, come back as an empty grid rather than an error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, clinic=%d, service=%d, date=%s",
		req.DoctorID, req.ClinicID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if _, err := uc.directoryClient.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, directoryClient.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if _, err := uc.directoryClient.GetClinic(ctx, req.ClinicID); err != nil {
		if errors.Is(err, directoryClient.ErrClinicNotFound) {
			uc.logger.Warn("GetAvailableSlots: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := service.DurationMinutes
	if durationMinutes <= 0 {
		uc.logger.Error("GetAvailableSlots: service id=%d has duration %d", req.ServiceID, durationMinutes)
		return nil, fmt.Errorf("%w: service has no usable duration", ErrInternal)
	}

	schedule, err := uc.directoryClient.GetDoctorSchedule(ctx, req.DoctorID, req.ClinicID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrDoctorNotFound) {
			// Doctor never works at this clinic: empty grid, not an error.
			uc.logger.Info("GetAvailableSlots: doctor id=%d has no schedule at clinic id=%d", req.DoctorID, req.ClinicID)
			return uc.emptyResponse(req, durationMinutes), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule doctor=%d clinic=%d: %v", req.DoctorID, req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	day := schedule.ForDate(req.Date)

	grid, err := generateGrid(day, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate grid: %v", ErrInternal, err)
	}

	if len(grid) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots for doctor=%d clinic=%d on %s", req.DoctorID, req.ClinicID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, durationMinutes), nil
	}

	appointments, err := uc.appointmentRepo.GetActiveByPartition(ctx, req.DoctorID, req.ClinicID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	slots := markOccupied(grid, appointments, day.EndTime, durationMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for doctor=%d clinic=%d service=%d on %s",
		len(slots), req.DoctorID, req.ClinicID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		DoctorID:        req.DoctorID,
		ClinicID:        req.ClinicID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		DoctorID:        req.DoctorID,
		ClinicID:        req.ClinicID,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}
}
