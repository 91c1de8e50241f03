package appointment

import (
	"time"

	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/dbmetrics"
	"github.com/mahmoud-medhat0/clinic-flow-sub000/pkg/types"
)

// Reuse the executor interfaces from dbmetrics so the repository works both
// on a bare *sql.DB path and inside managed transactions.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// UpdatePatch carries the mutable appointment fields; nil means "leave as is".
// Every applied patch bumps the revision in the same statement.
type UpdatePatch struct {
	DoctorID        *int64
	ClinicID        *int64
	ServiceID       *int64
	Date            *time.Time
	StartTime       *types.TimeString
	DurationMinutes *int
	ServiceName     *string
	Notes           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UpdatePatch) IsEmpty() bool {
	return p.DoctorID == nil && p.ClinicID == nil && p.ServiceID == nil &&
		p.Date == nil && p.StartTime == nil && p.DurationMinutes == nil &&
		p.ServiceName == nil && p.Notes == nil
}

// ChangesPlacement reports whether the patch touches the scheduling fields
// guarded by the conflict check.
func (p UpdatePatch) ChangesPlacement() bool {
	return p.DoctorID != nil || p.ClinicID != nil || p.Date != nil ||
		p.StartTime != nil || p.DurationMinutes != nil
}
