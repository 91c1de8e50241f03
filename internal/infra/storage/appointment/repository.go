package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/internal/domain"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/dbmetrics"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"clinic_id",
	"service_id",
	"appointment_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"patient_name",
	"patient_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"revision",
	"created_at",
	"updated_at",
}

// Repository is the single owner of appointment rows. Callers never reach the
// table except through it, and the write paths run inside the managed
// serializable transactions.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository over the given executor.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment at revision 1 and returns the stored row.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"patient_id",
			"doctor_id",
			"clinic_id",
			"service_id",
			"appointment_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"patient_name",
			"patient_phone",
			"notes",
		).
		Values(
			appt.PatientID,
			appt.DoctorID,
			appt.ClinicID,
			appt.ServiceID,
			appt.Date,
			appt.StartTime,
			appt.DurationMinutes,
			appt.Status,
			appt.ServiceName,
			appt.PatientName,
			appt.PatientPhone,
			appt.Notes,
		).
		Suffix("RETURNING id, revision, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.Revision,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID fetches a single appointment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// ListWithFilter returns one page of appointments matching the filter in the
// requested order, plus the total match count. Inside a transaction a filter
// pinned to a single (doctor, clinic, date) partition reads FOR UPDATE: that
// is the exclusive section the write paths rely on.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter, sort domain.SortMode, page domain.PageRequest) ([]*domain.Appointment, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page = page.Normalize()

	where := buildWhere(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - scan count: %w", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		OrderBy(orderClauses(sort)...).
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset()))

	if dbmetrics.IsInTransaction(ctx) && filter.IsSinglePartitionDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := r.scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetActiveByPartition returns the pending/confirmed appointments for one
// (doctor, clinic, date) partition, ordered by start time. Inside a
// transaction the rows are locked FOR UPDATE; this is the read the conflict
// check is built on.
func (r *Repository) GetActiveByPartition(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"doctor_id":        doctorID,
			"clinic_id":        clinicID,
			"appointment_date": date,
		}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPartition - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPartition - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Update applies the patch and bumps the revision in the same statement,
// returning the updated row.
func (r *Repository) Update(ctx context.Context, id int64, patch UpdatePatch) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("revision", squirrel.Expr("revision + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.DoctorID != nil {
		updateBuilder = updateBuilder.Set("doctor_id", *patch.DoctorID)
	}
	if patch.ClinicID != nil {
		updateBuilder = updateBuilder.Set("clinic_id", *patch.ClinicID)
	}
	if patch.ServiceID != nil {
		updateBuilder = updateBuilder.Set("service_id", *patch.ServiceID)
	}
	if patch.Date != nil {
		updateBuilder = updateBuilder.Set("appointment_date", *patch.Date)
	}
	if patch.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *patch.StartTime)
	}
	if patch.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *patch.DurationMinutes)
	}
	if patch.ServiceName != nil {
		updateBuilder = updateBuilder.Set("service_name", *patch.ServiceName)
	}
	if patch.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *patch.Notes)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// UpdateStatus moves an appointment from one status to another as a
// compare-and-set: a row that already left the expected status is reported as
// ErrStatusChanged, never silently overwritten. A transition into cancelled
// records the reason and the cancellation instant.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus, cancellationReason *string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("revision", squirrel.Expr("revision + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.
			Set("cancellation_reason", cancellationReason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		// Row missing or no longer in the expected status; let the caller
		// distinguish the two.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, ErrAppointmentNotFound
		}
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// Delete physically removes an appointment. Cancel retains history and is the
// recommended path; delete is the hard-removal escape hatch.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func buildWhere(filter domain.AppointmentFilter) squirrel.And {
	where := squirrel.And{}

	if filter.DoctorID != nil {
		where = append(where, squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		where = append(where, squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.ClinicID != nil {
		where = append(where, squirrel.Eq{"clinic_id": *filter.ClinicID})
	}
	if filter.ServiceID != nil {
		where = append(where, squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"patient_name": pattern},
			squirrel.ILike{"patient_phone": pattern},
		})
	}
	if filter.ActiveOnly {
		where = append(where, squirrel.Eq{"status": activeStatusStrings()})
	}

	if len(where) == 0 {
		// squirrel renders an empty And{} as "()", which Postgres rejects
		where = append(where, squirrel.Expr("TRUE"))
	}

	return where
}

func orderClauses(sort domain.SortMode) []string {
	switch sort {
	case domain.SortDateTimeDesc:
		return []string{"appointment_date DESC", "start_time DESC", "id DESC"}
	case domain.SortDateTimeAsc:
		return []string{"appointment_date ASC", "start_time ASC", "id ASC"}
	default:
		return []string{"created_at DESC", "id DESC"}
	}
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func columnList() string {
	list := appointmentColumns[0]
	for _, c := range appointmentColumns[1:] {
		list += ", " + c
	}
	return list
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.ClinicID,
		&appt.ServiceID,
		&appt.Date,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.ServiceName,
		&appt.PatientName,
		&appt.PatientPhone,
		&appt.Notes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&appt.Revision,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
