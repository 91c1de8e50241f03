package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	appointmentRepo "github.com/mahmoud-medhat0/clinic-flow-sub000/internal/infra/storage/appointment"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/integrations/notify"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/service/appointments/models"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/ptr"
)

// fakeRepo records the query it receives and serves canned data.
type fakeRepo struct {
	appt      *domain.Appointment
	getErr    error
	updateErr error
	deleteErr error
	listErr   error

	gotFilter domain.AppointmentFilter
	gotSort   domain.SortMode
	gotPage   domain.PageRequest
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.appt == nil || r.appt.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *r.appt
	return &copied, nil
}

func (r *fakeRepo) ListWithFilter(_ context.Context, filter domain.AppointmentFilter, sort domain.SortMode, page domain.PageRequest) ([]*domain.Appointment, int64, error) {
	r.gotFilter = filter
	r.gotSort = sort
	r.gotPage = page
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	if r.appt == nil {
		return nil, 0, nil
	}
	return []*domain.Appointment{r.appt}, 1, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, _, to domain.AppointmentStatus, reason *string) (*domain.Appointment, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	copied := *r.appt
	copied.Status = to
	if to == domain.StatusCancelled {
		copied.CancellationReason = reason
	}
	copied.Revision++
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, _ int64) error {
	return r.deleteErr
}

type fakeNotify struct {
	events []notify.Event
}

func (f *fakeNotify) Send(_ context.Context, event notify.Event) {
	f.events = append(f.events, event)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	// 2025-06-10 is a Tuesday.
	tuesday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	clock   = fixedClock{now: time.Date(2025, 6, 10, 11, 30, 0, 0, time.UTC)}
)

func sampleAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		PatientID:       10,
		DoctorID:        2,
		ClinicID:        3,
		ServiceID:       4,
		Date:            tuesday,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          status,
		ServiceName:     "Consultation",
		PatientName:     "Omar Farouk",
		PatientPhone:    "+201001234567",
		Revision:        1,
	}
}

func newService(repo *fakeRepo, sink *fakeNotify) *Service {
	return NewService(repo, sink, nopLogger{}, clock)
}

func TestUpdateStatus_ConfirmPending(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusPending)}
	sink := &fakeNotify{}
	svc := newService(repo, sink)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, sink.events, 1)
	assert.Equal(t, notify.EventConfirmed, sink.events[0].Type)
	assert.Equal(t, int64(1), sink.events[0].AppointmentID)
}

func TestUpdateStatus_CancelRequiresReason(t *testing.T) {
	tests := []struct {
		name   string
		reason *string
	}{
		{"nil reason", nil},
		{"empty reason", ptr.Ptr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{appt: sampleAppointment(domain.StatusConfirmed)}
			svc := newService(repo, &fakeNotify{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				Status:             "cancelled",
				CancellationReason: tt.reason,
			})
			assert.ErrorIs(t, err, ErrCancellationReasonRequired)
		})
	}
}

func TestUpdateStatus_CancelWithReason(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusPending)}
	sink := &fakeNotify{}
	svc := newService(repo, sink)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status:             "cancelled",
		CancellationReason: ptr.Ptr("patient requested"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "patient requested", *resp.CancellationReason)

	require.Len(t, sink.events, 1)
	assert.Equal(t, notify.EventCancelled, sink.events[0].Type)
	require.NotNil(t, sink.events[0].Reason)
	assert.Equal(t, "patient requested", *sink.events[0].Reason)
}

func TestUpdateStatus_TerminalStatesRejectEverything(t *testing.T) {
	// Terminal states accept nothing, repeats of themselves included.
	for _, from := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		for _, to := range []string{"pending", "confirmed", "cancelled", "completed"} {
			t.Run(string(from)+"_to_"+to, func(t *testing.T) {
				repo := &fakeRepo{appt: sampleAppointment(from)}
				svc := newService(repo, &fakeNotify{})

				_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
					Status:             to,
					CancellationReason: ptr.Ptr("reason"),
				})
				assert.ErrorIs(t, err, ErrInvalidTransition)
			})
		}
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusPending)}
	svc := newService(repo, &fakeNotify{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	repo := &fakeRepo{
		appt:      sampleAppointment(domain.StatusPending),
		updateErr: appointmentRepo.ErrStatusChanged,
	}
	sink := &fakeNotify{}
	svc := newService(repo, sink)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.Empty(t, sink.events)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeNotify{})

	_, err := svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_FiltersApplyConjunctively(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusConfirmed)}
	svc := newService(repo, &fakeNotify{})

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		DoctorID: ptr.Ptr(int64(2)),
		ClinicID: ptr.Ptr(int64(3)),
		Status:   ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.DoctorID)
	assert.Equal(t, int64(2), *repo.gotFilter.DoctorID)
	require.NotNil(t, repo.gotFilter.ClinicID)
	assert.Equal(t, int64(3), *repo.gotFilter.ClinicID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
	assert.Nil(t, repo.gotFilter.PatientID)
	assert.Equal(t, domain.SortCreatedDesc, repo.gotSort)
}

func TestList_Tabs(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		tab       string
		wantStart *time.Time
		wantEnd   *time.Time
		wantSort  domain.SortMode
	}{
		{models.TabToday, &today, &today, domain.SortCreatedDesc},
		{models.TabUpcoming, &today, nil, domain.SortDateTimeAsc},
		{models.TabPrevious, nil, &yesterday, domain.SortDateTimeDesc},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newService(repo, &fakeNotify{})

			_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Tab: &tt.tab})
			require.NoError(t, err)

			if tt.wantStart == nil {
				assert.Nil(t, repo.gotFilter.StartDate)
			} else {
				require.NotNil(t, repo.gotFilter.StartDate)
				assert.True(t, tt.wantStart.Equal(*repo.gotFilter.StartDate))
			}
			if tt.wantEnd == nil {
				assert.Nil(t, repo.gotFilter.EndDate)
			} else {
				require.NotNil(t, repo.gotFilter.EndDate)
				assert.True(t, tt.wantEnd.Equal(*repo.gotFilter.EndDate))
			}
			assert.Equal(t, tt.wantSort, repo.gotSort)
		})
	}
}

func TestList_ExplicitDateRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeNotify{})

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Status:    ptr.Ptr("confirmed"),
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.StartDate)
	assert.True(t, start.Equal(*repo.gotFilter.StartDate))
	require.NotNil(t, repo.gotFilter.EndDate)
	assert.True(t, end.Equal(*repo.gotFilter.EndDate))
}

func TestList_DateRangeIntersectsTab(t *testing.T) {
	// upcoming starts today (2025-06-10); an explicit range inside the tab's
	// span narrows it, an earlier start does not widen it.
	repo := &fakeRepo{}
	svc := newService(repo, &fakeNotify{})

	tab := models.TabUpcoming
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Tab:       &tab,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.StartDate)
	assert.True(t, tuesday.Equal(*repo.gotFilter.StartDate), "tab start stays when the explicit start is earlier")
	require.NotNil(t, repo.gotFilter.EndDate)
	assert.True(t, end.Equal(*repo.gotFilter.EndDate))
}

func TestList_InvertedDateRange(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeNotify{})

	start := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_SearchForcesNewestFirst(t *testing.T) {
	// The upcoming tab normally sorts ascending; an active search overrides it.
	repo := &fakeRepo{}
	svc := newService(repo, &fakeNotify{})

	tab := models.TabUpcoming
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		Tab:    &tab,
		Search: ptr.Ptr("Omar"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SortDateTimeDesc, repo.gotSort)
	require.NotNil(t, repo.gotFilter.Search)
	assert.Equal(t, "Omar", *repo.gotFilter.Search)
}

func TestList_UnknownTab(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeNotify{})

	tab := "archive"
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Tab: &tab})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_UnknownStatusFilter(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeNotify{})

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList_PaginationNormalized(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, domain.DefaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"clamped per page", 2, 10_000, 2, domain.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newService(repo, &fakeNotify{})

			resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Page: tt.page, PerPage: tt.perPage})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, repo.gotPage.Page)
			assert.Equal(t, tt.wantPerPage, repo.gotPage.PerPage)
			assert.Equal(t, tt.wantPage, resp.Page)
		})
	}
}

func TestListPatientAppointments(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusCompleted)}
	svc := newService(repo, &fakeNotify{})

	resp, err := svc.ListPatientAppointments(context.Background(), 10, domain.PageRequest{})
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.PatientID)
	assert.Equal(t, int64(10), *repo.gotFilter.PatientID)
	assert.Equal(t, domain.SortDateTimeDesc, repo.gotSort)
	assert.Equal(t, int64(1), resp.TotalCount)
}

func TestListDoctorDay(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusConfirmed)}
	svc := newService(repo, &fakeNotify{})

	_, err := svc.ListDoctorDay(context.Background(), 2, nil, tuesday)
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.DoctorID)
	assert.Equal(t, int64(2), *repo.gotFilter.DoctorID)
	assert.Nil(t, repo.gotFilter.ClinicID)
	assert.True(t, repo.gotFilter.ActiveOnly)
	require.NotNil(t, repo.gotFilter.StartDate)
	assert.True(t, tuesday.Equal(*repo.gotFilter.StartDate))
	assert.Equal(t, domain.SortDateTimeAsc, repo.gotSort)
	assert.Equal(t, domain.MaxPageSize, repo.gotPage.PerPage)
}

func TestListDoctorDay_ScopedToClinic(t *testing.T) {
	// A doctor working at two clinics must be able to pull one clinic's day.
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusConfirmed)}
	svc := newService(repo, &fakeNotify{})

	_, err := svc.ListDoctorDay(context.Background(), 2, ptr.Ptr(int64(3)), tuesday)
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.ClinicID)
	assert.Equal(t, int64(3), *repo.gotFilter.ClinicID)
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{appt: sampleAppointment(domain.StatusPending)}
	svc := newService(repo, &fakeNotify{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, "Omar Farouk", resp.PatientName)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{}, &fakeNotify{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeRepo{deleteErr: appointmentRepo.ErrAppointmentNotFound}
	svc := newService(repo, &fakeNotify{})

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
