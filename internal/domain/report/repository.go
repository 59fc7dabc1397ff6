package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
)

// SessionPair is a closed clock-in/clock-out pair used for work-hours
// bucketing. Bucketing itself happens in the service.
type SessionPair struct {
	Time         time.Time
	ClockOutTime time.Time
}

// SummaryRecord is the slim projection the aggregation queries work on.
type SummaryRecord struct {
	Type      checkclock.Type
	Status    *checkclock.Status
	StartDate *time.Time
	EndDate   *time.Time
}

// RecentRow is one line of the admin recent-attendance table.
type RecentRow struct {
	EmployeeName string
	Type         checkclock.Type
	Status       *checkclock.Status
	Time         *time.Time
}

// Repository defines the read-side aggregation queries.
type Repository interface {
	// GetMonthlyRecords fetches an employee's records counted in a month:
	// clock-ins by time, absences by start date, leaves by range overlap.
	GetMonthlyRecords(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]SummaryRecord, error)

	// GetClosedSessions fetches an employee's closed clock sessions whose
	// clock-in falls in the month.
	GetClosedSessions(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]SessionPair, error)

	// GetApprovedLeaves fetches an employee's APPROVED leave records
	// overlapping the month.
	GetApprovedLeaves(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]SummaryRecord, error)

	// GetCompanyMonthlyRecords fetches a company's APPROVED records counted
	// in a month.
	GetCompanyMonthlyRecords(ctx context.Context, companyID string, monthStart, monthEnd time.Time) ([]SummaryRecord, error)

	// GetCompanyRecent fetches the latest APPROVED records of a company in
	// a month with employee names, newest first.
	GetCompanyRecent(ctx context.Context, companyID string, monthStart, monthEnd time.Time, limit int) ([]RecentRow, error)
}
