package checkclock

import (
	"context"
	"time"
)

// CloseSessionParams carries the mutation applied when an open clock-in is
// closed, either by the employee, an admin, or the auto clock-out sweep.
type CloseSessionParams struct {
	ClockOutTime      time.Time
	ApprovedBy        *string
	ApprovedAt        *time.Time
	ClockOutProofURL  *string
	ClockOutProofName *string
}

// Repository defines data access for check-clock records. Company-scoped
// methods take companyID to keep tenants isolated at the query level.
type Repository interface {
	// Create inserts a new record
	Create(ctx context.Context, record CheckClock) (CheckClock, error)

	// GetByID retrieves a record with employee info, company-scoped
	GetByID(ctx context.Context, id string, companyID string) (CheckClock, error)

	// GetOpenSession returns the most recent CLOCK_IN without a clock-out,
	// or nil when the employee has none.
	GetOpenSession(ctx context.Context, employeeID string) (*CheckClock, error)

	// CloseSession sets the clock-out fields on an open session
	CloseSession(ctx context.Context, id string, params CloseSessionParams) (CheckClock, error)

	// ListByEmployee returns all records for one employee, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]CheckClock, error)

	// ListByCompany returns all records for a company with employee info,
	// newest first
	ListByCompany(ctx context.Context, companyID string) ([]CheckClock, error)

	// UpdateApproval overwrites the approval state and approver stamp
	UpdateApproval(ctx context.Context, id string, approval Approval, approvedBy string, approvedAt time.Time) (CheckClock, error)

	// AutoClockOut closes every open CLOCK_IN whose time is before the
	// cutoff instant, setting clock_out_time to the cutoff. Returns the
	// number of rows closed.
	AutoClockOut(ctx context.Context, cutoff time.Time) (int64, error)
}
