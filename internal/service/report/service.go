package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/report"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	repo           report.Repository
	leaveQuotaDays int
}

func NewReportService(repo report.Repository, leaveQuotaDays int) report.Service {
	return &ReportServiceImpl{
		repo:           repo,
		leaveQuotaDays: leaveQuotaDays,
	}
}

const recentAttendanceLimit = 5

// weekdayLabels is the fixed Mon-Fri order of the weekly chart.
var weekdayLabels = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// monthLabels is the fixed order of the monthly chart. Days 29-31 fold
// into Week 4.
var monthLabels = []string{"Week 1", "Week 2", "Week 3", "Week 4"}

func employeeClaim(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

func companyClaim(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// AttendanceSummary implements report.Service.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, month string) (report.AttendanceSummaryResponse, error) {
	employeeID, err := employeeClaim(ctx)
	if err != nil {
		return report.AttendanceSummaryResponse{}, err
	}

	monthStart, monthEnd, err := report.MonthRange(month)
	if err != nil {
		return report.AttendanceSummaryResponse{}, err
	}

	records, err := s.repo.GetMonthlyRecords(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return report.AttendanceSummaryResponse{}, err
	}

	var resp report.AttendanceSummaryResponse
	for _, r := range records {
		switch r.Type {
		case checkclock.TypeClockIn:
			if r.Status != nil && *r.Status == checkclock.StatusLate {
				resp.Late++
			} else {
				resp.OnTime++
			}
		case checkclock.TypeAbsent:
			resp.Absent++
		case checkclock.TypeAnnualLeave:
			resp.AnnualLeave += leaveDaysOf(r)
		case checkclock.TypeSickLeave:
			resp.SickLeave += leaveDaysOf(r)
		}
	}

	return resp, nil
}

// WorkHours implements report.Service.
func (s *ReportServiceImpl) WorkHours(ctx context.Context, month string, view string) (report.WorkHoursResponse, error) {
	if view != report.ViewWeek && view != report.ViewMonth {
		return report.WorkHoursResponse{}, report.ErrInvalidView
	}

	employeeID, err := employeeClaim(ctx)
	if err != nil {
		return report.WorkHoursResponse{}, err
	}

	monthStart, monthEnd, err := report.MonthRange(month)
	if err != nil {
		return report.WorkHoursResponse{}, err
	}

	sessions, err := s.repo.GetClosedSessions(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return report.WorkHoursResponse{}, err
	}

	labels := weekdayLabels
	if view == report.ViewMonth {
		labels = monthLabels
	}

	buckets := make(map[string]int, len(labels))
	total := 0
	for _, session := range sessions {
		minutes := checkclock.WorkMinutes(session.Time, session.ClockOutTime)
		total += minutes

		label, ok := bucketLabel(session.Time, view)
		if !ok {
			continue
		}
		buckets[label] += minutes
	}

	series := make([]report.WorkHoursPoint, 0, len(labels))
	for _, label := range labels {
		series = append(series, report.WorkHoursPoint{
			Label:   label,
			Minutes: buckets[label],
		})
	}

	return report.WorkHoursResponse{
		TotalMinutes: total,
		Series:       series,
	}, nil
}

// bucketLabel places a clock-in instant into its chart bucket. Weekend
// sessions fall outside the weekly chart.
func bucketLabel(t time.Time, view string) (string, bool) {
	if view == report.ViewMonth {
		week := (t.Day()-1)/7 + 1
		if week > 4 {
			week = 4
		}
		return fmt.Sprintf("Week %d", week), true
	}

	switch t.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return t.Weekday().String(), true
	default:
		return "", false
	}
}

// LeaveSummary implements report.Service.
func (s *ReportServiceImpl) LeaveSummary(ctx context.Context, month string) (report.LeaveSummaryResponse, error) {
	employeeID, err := employeeClaim(ctx)
	if err != nil {
		return report.LeaveSummaryResponse{}, err
	}

	monthStart, monthEnd, err := report.MonthRange(month)
	if err != nil {
		return report.LeaveSummaryResponse{}, err
	}

	leaves, err := s.repo.GetApprovedLeaves(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		return report.LeaveSummaryResponse{}, err
	}

	resp := report.LeaveSummaryResponse{
		QuotaDays: s.leaveQuotaDays,
	}

	for _, leave := range leaves {
		days := leaveDaysOf(leave)
		switch leave.Type {
		case checkclock.TypeAnnualLeave:
			resp.AnnualLeave += days
		case checkclock.TypeSickLeave:
			resp.SickLeave += days
		}
	}

	// Only annual leave draws on the quota.
	resp.TakenDays = resp.AnnualLeave
	resp.RemainingDays = s.leaveQuotaDays - resp.AnnualLeave
	if resp.RemainingDays < 0 {
		resp.RemainingDays = 0
	}

	return resp, nil
}

// CompanyStats implements report.Service.
func (s *ReportServiceImpl) CompanyStats(ctx context.Context, month string) (report.CompanyStatsResponse, error) {
	companyID, err := companyClaim(ctx)
	if err != nil {
		return report.CompanyStatsResponse{}, err
	}

	monthStart, monthEnd, err := report.MonthRange(month)
	if err != nil {
		return report.CompanyStatsResponse{}, err
	}

	records, err := s.repo.GetCompanyMonthlyRecords(ctx, companyID, monthStart, monthEnd)
	if err != nil {
		return report.CompanyStatsResponse{}, err
	}

	var resp report.CompanyStatsResponse
	for _, r := range records {
		switch r.Type {
		case checkclock.TypeClockIn:
			if r.Status != nil && *r.Status == checkclock.StatusLate {
				resp.Late++
			} else {
				resp.OnTime++
			}
		case checkclock.TypeAbsent:
			resp.Absent++
		case checkclock.TypeAnnualLeave:
			resp.AnnualLeave++
		case checkclock.TypeSickLeave:
			resp.SickLeave++
		}
	}

	return resp, nil
}

// RecentAttendance implements report.Service.
func (s *ReportServiceImpl) RecentAttendance(ctx context.Context, month string) ([]report.RecentAttendanceRow, error) {
	companyID, err := companyClaim(ctx)
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd, err := report.MonthRange(month)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetCompanyRecent(ctx, companyID, monthStart, monthEnd, recentAttendanceLimit)
	if err != nil {
		return nil, err
	}

	out := make([]report.RecentAttendanceRow, 0, len(rows))
	for i, row := range rows {
		item := report.RecentAttendanceRow{
			No:      i + 1,
			Name:    row.EmployeeName,
			Status:  statusLabel(row),
			CheckIn: "-",
		}
		if row.Time != nil {
			item.CheckIn = row.Time.Format("15:04")
		}
		out = append(out, item)
	}

	return out, nil
}

func statusLabel(row report.RecentRow) string {
	switch row.Type {
	case checkclock.TypeClockIn:
		if row.Status != nil && *row.Status == checkclock.StatusLate {
			return "Late"
		}
		return "On Time"
	case checkclock.TypeAbsent:
		return "Absent"
	case checkclock.TypeAnnualLeave:
		return "Annual Leave"
	case checkclock.TypeSickLeave:
		return "Sick Leave"
	default:
		return "-"
	}
}

func leaveDaysOf(r report.SummaryRecord) int {
	if r.StartDate == nil || r.EndDate == nil {
		return 0
	}
	return checkclock.LeaveDays(*r.StartDate, *r.EndDate)
}
