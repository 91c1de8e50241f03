package domain

import "time"

// SortMode is the stable ordering applied to list results
type SortMode string

const (
	// SortCreatedDesc is the default list ordering: most recently created
	// first, id as tiebreak
	SortCreatedDesc SortMode = "created_desc"

	// SortDateTimeDesc orders by date then start time, newest first; used by
	// free-text search and the "previous" tab
	SortDateTimeDesc SortMode = "datetime_desc"

	// SortDateTimeAsc orders by date then start time, earliest first; used by
	// the "upcoming" tab and day views
	SortDateTimeAsc SortMode = "datetime_asc"
)

// AppointmentFilter combines predicates; all set fields apply conjunctively
type AppointmentFilter struct {
	DoctorID  *int64
	PatientID *int64
	ClinicID  *int64
	ServiceID *int64
	Status    *AppointmentStatus

	// Inclusive date range [StartDate, EndDate]
	StartDate *time.Time
	EndDate   *time.Time

	// Case-insensitive substring over patient name and phone
	Search *string

	// ActiveOnly narrows to pending/confirmed; the partition reads of the
	// conflict checks always set it
	ActiveOnly bool
}

// IsSinglePartitionDay reports whether the filter pins exactly one
// (doctor, clinic, date) partition, the unit the write paths lock.
func (f *AppointmentFilter) IsSinglePartitionDay() bool {
	return f.DoctorID != nil && f.ClinicID != nil &&
		f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

// PageRequest is a client paging request
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize clamps the request to sane bounds
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPageSize
	}
	if p.PerPage > MaxPageSize {
		p.PerPage = MaxPageSize
	}
	return p
}

// Offset returns the SQL offset for the normalized request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}
