package report

import (
	"context"
)

// Service defines the aggregation queries. Employee endpoints read the
// employee from claims; admin endpoints read the company.
type Service interface {
	// AttendanceSummary counts the employee's month per category
	AttendanceSummary(ctx context.Context, month string) (AttendanceSummaryResponse, error)

	// WorkHours buckets the employee's closed sessions for charting
	WorkHours(ctx context.Context, month string, view string) (WorkHoursResponse, error)

	// LeaveSummary reports leave taken against the annual quota
	LeaveSummary(ctx context.Context, month string) (LeaveSummaryResponse, error)

	// CompanyStats counts the company's approved records per category
	CompanyStats(ctx context.Context, month string) (CompanyStatsResponse, error)

	// RecentAttendance returns the latest approved records of the company
	RecentAttendance(ctx context.Context, month string) ([]RecentAttendanceRow, error)
}
