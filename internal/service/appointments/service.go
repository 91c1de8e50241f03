package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	appointmentRepo "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/infra/storage/appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/notify"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
)

// Service owns the appointment read paths and the lifecycle transitions.
type Service struct {
	appointmentRepo AppointmentRepository
	notifyClient    NotifyClient
	logger          Logger
	timeProvider    TimeProvider
}

// NewService creates an appointments service.
func NewService(
	appointmentRepo AppointmentRepository,
	notifyClient NotifyClient,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifyClient:    notifyClient,
		logger:          logger,
		timeProvider:    timeProvider,
	}
}

// GetByID fetches a single appointment.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List returns one page of appointments matching the request. The tab
// restricts the date range and picks the ordering; an active free-text
// search always orders newest-first by appointment time, whatever the tab.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, sort, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	page := domain.PageRequest{Page: req.Page, PerPage: req.PerPage}.Normalize()

	items, total, err := s.appointmentRepo.ListWithFilter(ctx, filter, sort, page)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: returned %d of %d appointments (page=%d)", len(items), total, page.Page)
	return models.FromDomainAppointments(items, total, page), nil
}

// ListPatientAppointments returns a patient's appointment history, newest
// first.
func (s *Service) ListPatientAppointments(ctx context.Context, patientID int64, page domain.PageRequest) (*models.AppointmentListResponse, error) {
	filter := domain.AppointmentFilter{PatientID: &patientID}
	page = page.Normalize()

	items, total, err := s.appointmentRepo.ListWithFilter(ctx, filter, domain.SortDateTimeDesc, page)
	if err != nil {
		s.logger.Error("ListPatientAppointments: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: ListPatientAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(items, total, page), nil
}

// ListDoctorDay returns a doctor's active appointments for one date in
// chronological order, as a single page sized to hold the whole day. A
// clinic narrows the view to that clinic; nil covers every clinic the
// doctor works at.
func (s *Service) ListDoctorDay(ctx context.Context, doctorID int64, clinicID *int64, date time.Time) (*models.AppointmentListResponse, error) {
	filter := domain.AppointmentFilter{
		DoctorID:   &doctorID,
		ClinicID:   clinicID,
		StartDate:  &date,
		EndDate:    &date,
		ActiveOnly: true,
	}
	page := domain.PageRequest{Page: 1, PerPage: domain.MaxPageSize}

	items, total, err := s.appointmentRepo.ListWithFilter(ctx, filter, domain.SortDateTimeAsc, page)
	if err != nil {
		s.logger.Error("ListDoctorDay: repository error for doctor=%d date=%s: %v", doctorID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListDoctorDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(items, total, page), nil
}

// UpdateStatus moves an appointment through its lifecycle. The legal moves
// are pending to confirmed, cancelled or completed, and confirmed to
// completed or cancelled; terminal states accept nothing, including repeats
// of themselves. Cancelling requires a reason.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	target, ok := domain.ParseStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := domain.ValidateTransition(appt.Status, target, req.CancellationReason); err != nil {
		if errors.Is(err, domain.ErrCancellationReasonRequired) {
			s.logger.Warn("UpdateStatus: cancellation without reason for appointment id=%d", id)
			return nil, ErrCancellationReasonRequired
		}
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for appointment id=%d", appt.Status, target, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	updated, err := s.appointmentRepo.UpdateStatus(ctx, id, appt.Status, target, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrStatusChanged):
			s.logger.Warn("UpdateStatus: concurrent status change on appointment id=%d", id)
			return nil, ErrStatusChanged
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", id, appt.Status, target)
	s.sendStatusEvent(ctx, updated, target, req.CancellationReason)

	return models.FromDomainAppointment(updated), nil
}

// Delete physically removes an appointment. Cancellation is the usual path;
// delete exists for records created by mistake.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d removed", id)
	return nil
}

func (s *Service) buildFilter(req *models.ListAppointmentsRequest) (domain.AppointmentFilter, domain.SortMode, error) {
	filter := domain.AppointmentFilter{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		ClinicID:  req.ClinicID,
		ServiceID: req.ServiceID,
		Search:    req.Search,
	}

	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return filter, domain.SortCreatedDesc, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	if req.Search != nil && len(*req.Search) > domain.MaxSearchLength {
		return filter, domain.SortCreatedDesc, fmt.Errorf("%w: search term too long", ErrInvalidInput)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return filter, domain.SortCreatedDesc, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	sort := domain.SortCreatedDesc

	if req.Tab != nil {
		today := s.today()
		switch *req.Tab {
		case models.TabToday:
			filter.StartDate = &today
			filter.EndDate = &today
			sort = domain.SortCreatedDesc
		case models.TabUpcoming:
			filter.StartDate = &today
			sort = domain.SortDateTimeAsc
		case models.TabPrevious:
			yesterday := today.AddDate(0, 0, -1)
			filter.EndDate = &yesterday
			sort = domain.SortDateTimeDesc
		default:
			return filter, sort, fmt.Errorf("%w: unknown tab %q", ErrInvalidInput, *req.Tab)
		}
	}

	// An explicit range narrows whatever the tab derived: the later start
	// and the earlier end win.
	if req.StartDate != nil && (filter.StartDate == nil || req.StartDate.After(*filter.StartDate)) {
		filter.StartDate = req.StartDate
	}
	if req.EndDate != nil && (filter.EndDate == nil || req.EndDate.Before(*filter.EndDate)) {
		filter.EndDate = req.EndDate
	}

	// A search session is a lookup, not a calendar view: newest first.
	if req.HasSearch() {
		sort = domain.SortDateTimeDesc
	}

	return filter, sort, nil
}

func (s *Service) today() time.Time {
	now := s.timeProvider.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Service) sendStatusEvent(ctx context.Context, appt *domain.Appointment, target domain.AppointmentStatus, reason *string) {
	var eventType notify.EventType
	switch target {
	case domain.StatusConfirmed:
		eventType = notify.EventConfirmed
	case domain.StatusCancelled:
		eventType = notify.EventCancelled
	case domain.StatusCompleted:
		eventType = notify.EventCompleted
	default:
		return
	}

	s.notifyClient.Send(ctx, notify.Event{
		Type:          eventType,
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime,
		Reason:        reason,
		OccurredAt:    s.timeProvider.Now(),
	})
}
