package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepository{db: db}
}

func scanSummaryRecords(rows pgx.Rows) ([]report.SummaryRecord, error) {
	var out []report.SummaryRecord
	for rows.Next() {
		var rec report.SummaryRecord
		var recordType string
		var status *string

		if err := rows.Scan(&recordType, &status, &rec.StartDate, &rec.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan summary record: %w", err)
		}

		rec.Type = checkclock.Type(recordType)
		if status != nil {
			s := checkclock.Status(*status)
			rec.Status = &s
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetMonthlyRecords fetches an employee's records counted in a month:
// clock-ins by time, absences by start date, leaves by range overlap.
func (r *reportRepository) GetMonthlyRecords(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT type, status, start_date, end_date
		FROM check_clocks
		WHERE employee_id = $1
			AND (
				(type = 'CLOCK_IN' AND time >= $2 AND time <= $3)
				OR (type = 'ABSENT' AND start_date >= $2 AND start_date <= $3)
				OR (type IN ('ANNUAL_LEAVE', 'SICK_LEAVE')
					AND start_date <= $3 AND end_date >= $2)
			)
	`

	rows, err := q.Query(ctx, query, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly records: %w", err)
	}
	defer rows.Close()

	return scanSummaryRecords(rows)
}

// GetClosedSessions fetches closed clock sessions whose clock-in falls in
// the month
func (r *reportRepository) GetClosedSessions(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SessionPair, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT time, clock_out_time
		FROM check_clocks
		WHERE employee_id = $1
			AND type = 'CLOCK_IN'
			AND clock_out_time IS NOT NULL
			AND time >= $2 AND time <= $3
	`

	rows, err := q.Query(ctx, query, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query closed sessions: %w", err)
	}
	defer rows.Close()

	var out []report.SessionPair
	for rows.Next() {
		var p report.SessionPair
		if err := rows.Scan(&p.Time, &p.ClockOutTime); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// GetApprovedLeaves fetches APPROVED leave records overlapping the month
func (r *reportRepository) GetApprovedLeaves(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT type, status, start_date, end_date
		FROM check_clocks
		WHERE employee_id = $1
			AND type IN ('ANNUAL_LEAVE', 'SICK_LEAVE')
			AND approval = 'APPROVED'
			AND start_date <= $3 AND end_date >= $2
	`

	rows, err := q.Query(ctx, query, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves: %w", err)
	}
	defer rows.Close()

	return scanSummaryRecords(rows)
}

// GetCompanyMonthlyRecords fetches a company's APPROVED records counted in
// a month
func (r *reportRepository) GetCompanyMonthlyRecords(ctx context.Context, companyID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT type, status, start_date, end_date
		FROM check_clocks
		WHERE company_id = $1
			AND approval = 'APPROVED'
			AND (
				(type = 'CLOCK_IN' AND time >= $2 AND time <= $3)
				OR (type IN ('ABSENT', 'ANNUAL_LEAVE', 'SICK_LEAVE')
					AND start_date >= $2 AND start_date <= $3)
			)
	`

	rows, err := q.Query(ctx, query, companyID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query company monthly records: %w", err)
	}
	defer rows.Close()

	return scanSummaryRecords(rows)
}

// GetCompanyRecent fetches the latest APPROVED records of a company in a
// month with employee names, newest first
func (r *reportRepository) GetCompanyRecent(ctx context.Context, companyID string, monthStart, monthEnd time.Time, limit int) ([]report.RecentRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')),
			cc.type, cc.status, cc.time
		FROM check_clocks cc
		JOIN employees e ON e.id = cc.employee_id
		WHERE cc.company_id = $1
			AND cc.approval = 'APPROVED'
			AND (
				(cc.type = 'CLOCK_IN' AND cc.time >= $2 AND cc.time <= $3)
				OR (cc.type IN ('ABSENT', 'ANNUAL_LEAVE', 'SICK_LEAVE')
					AND cc.start_date >= $2 AND cc.start_date <= $3)
			)
		ORDER BY cc.time DESC NULLS LAST
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, companyID, monthStart, monthEnd, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer rows.Close()

	var out []report.RecentRow
	for rows.Next() {
		var row report.RecentRow
		var recordType string
		var status *string

		if err := rows.Scan(&row.EmployeeName, &recordType, &status, &row.Time); err != nil {
			return nil, fmt.Errorf("failed to scan recent record: %w", err)
		}

		row.Type = checkclock.Type(recordType)
		if status != nil {
			s := checkclock.Status(*status)
			row.Status = &s
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
