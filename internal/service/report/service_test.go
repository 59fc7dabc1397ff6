package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/report"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============= Test fakes =============

type fakeReportRepo struct {
	records  []report.SummaryRecord
	sessions []report.SessionPair
	leaves   []report.SummaryRecord
	company  []report.SummaryRecord
	recent   []report.RecentRow

	recentLimit int
}

func (f *fakeReportRepo) GetMonthlyRecords(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	return f.records, nil
}

func (f *fakeReportRepo) GetClosedSessions(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SessionPair, error) {
	return f.sessions, nil
}

func (f *fakeReportRepo) GetApprovedLeaves(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	return f.leaves, nil
}

func (f *fakeReportRepo) GetCompanyMonthlyRecords(ctx context.Context, companyID string, monthStart, monthEnd time.Time) ([]report.SummaryRecord, error) {
	return f.company, nil
}

func (f *fakeReportRepo) GetCompanyRecent(ctx context.Context, companyID string, monthStart, monthEnd time.Time, limit int) ([]report.RecentRow, error) {
	f.recentLimit = limit
	return f.recent, nil
}

// ============= Helpers =============

func authContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"company_id":  "company-1",
		"role":        "user",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func statusPtr(s checkclock.Status) *checkclock.Status { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func session(in, out time.Time) report.SessionPair {
	return report.SessionPair{Time: in, ClockOutTime: out}
}

// ============= Tests =============

func TestAttendanceSummary_CountsPerCategory(t *testing.T) {
	leaveStart := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	leaveEnd := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)

	repo := &fakeReportRepo{records: []report.SummaryRecord{
		{Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusOnTime)},
		{Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusOnTime)},
		{Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusLate)},
		{Type: checkclock.TypeAbsent},
		{Type: checkclock.TypeAnnualLeave, StartDate: &leaveStart, EndDate: &leaveEnd},
		{Type: checkclock.TypeSickLeave, StartDate: &leaveStart, EndDate: &leaveStart},
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.AttendanceSummary(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.OnTime)
	assert.Equal(t, 1, resp.Late)
	assert.Equal(t, 1, resp.Absent)
	// 10 Jun - 12 Jun inclusive
	assert.Equal(t, 3, resp.AnnualLeave)
	assert.Equal(t, 1, resp.SickLeave)
}

func TestAttendanceSummary_LeaveWithoutDatesCountsZeroDays(t *testing.T) {
	repo := &fakeReportRepo{records: []report.SummaryRecord{
		{Type: checkclock.TypeAnnualLeave},
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.AttendanceSummary(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AnnualLeave)
}

func TestAttendanceSummary_InvalidMonth(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, 10)

	_, err := svc.AttendanceSummary(authContext(t), "June 2025")
	assert.ErrorIs(t, err, report.ErrInvalidMonth)
}

func TestWorkHours_WeekViewSkipsWeekends(t *testing.T) {
	// 2 Jun 2025 is a Monday, 7 Jun a Saturday.
	repo := &fakeReportRepo{sessions: []report.SessionPair{
		session(
			time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local),
			time.Date(2025, 6, 2, 17, 0, 0, 0, time.Local),
		),
		session(
			time.Date(2025, 6, 3, 8, 0, 0, 0, time.Local),
			time.Date(2025, 6, 3, 12, 30, 0, 0, time.Local),
		),
		session(
			time.Date(2025, 6, 7, 8, 0, 0, 0, time.Local),
			time.Date(2025, 6, 7, 10, 0, 0, 0, time.Local),
		),
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.WorkHours(authContext(t), "2025-06", report.ViewWeek)
	require.NoError(t, err)

	// Saturday still counts toward the total, just not a bucket.
	assert.Equal(t, 540+270+120, resp.TotalMinutes)

	require.Len(t, resp.Series, 5)
	assert.Equal(t, "Monday", resp.Series[0].Label)
	assert.Equal(t, 540, resp.Series[0].Minutes)
	assert.Equal(t, "Tuesday", resp.Series[1].Label)
	assert.Equal(t, 270, resp.Series[1].Minutes)
	assert.Equal(t, "Wednesday", resp.Series[2].Label)
	assert.Equal(t, 0, resp.Series[2].Minutes)
	assert.Equal(t, "Friday", resp.Series[4].Label)
}

func TestWorkHours_MonthViewFoldsTrailingDaysIntoWeekFour(t *testing.T) {
	repo := &fakeReportRepo{sessions: []report.SessionPair{
		session(
			time.Date(2025, 7, 1, 8, 0, 0, 0, time.Local),
			time.Date(2025, 7, 1, 9, 0, 0, 0, time.Local),
		),
		session(
			time.Date(2025, 7, 8, 8, 0, 0, 0, time.Local),
			time.Date(2025, 7, 8, 10, 0, 0, 0, time.Local),
		),
		session(
			time.Date(2025, 7, 22, 8, 0, 0, 0, time.Local),
			time.Date(2025, 7, 22, 9, 30, 0, 0, time.Local),
		),
		session(
			time.Date(2025, 7, 31, 8, 0, 0, 0, time.Local),
			time.Date(2025, 7, 31, 9, 0, 0, 0, time.Local),
		),
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.WorkHours(authContext(t), "2025-07", report.ViewMonth)
	require.NoError(t, err)

	require.Len(t, resp.Series, 4)
	assert.Equal(t, "Week 1", resp.Series[0].Label)
	assert.Equal(t, 60, resp.Series[0].Minutes)
	assert.Equal(t, "Week 2", resp.Series[1].Label)
	assert.Equal(t, 120, resp.Series[1].Minutes)
	assert.Equal(t, "Week 3", resp.Series[2].Label)
	assert.Equal(t, 0, resp.Series[2].Minutes)
	// Day 22 lands in Week 4 ((22-1)/7+1), day 31 folds into it too.
	assert.Equal(t, "Week 4", resp.Series[3].Label)
	assert.Equal(t, 150, resp.Series[3].Minutes)
}

func TestWorkHours_InvalidView(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, 10)

	_, err := svc.WorkHours(authContext(t), "2025-06", "year")
	assert.ErrorIs(t, err, report.ErrInvalidView)
}

func TestLeaveSummary_OnlyAnnualLeaveDrawsQuota(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.Local)
	sickDay := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)

	repo := &fakeReportRepo{leaves: []report.SummaryRecord{
		{Type: checkclock.TypeAnnualLeave, StartDate: &start, EndDate: &end},
		{Type: checkclock.TypeSickLeave, StartDate: &sickDay, EndDate: &sickDay},
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.LeaveSummary(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 10, resp.QuotaDays)
	assert.Equal(t, 3, resp.AnnualLeave)
	assert.Equal(t, 1, resp.SickLeave)
	assert.Equal(t, 3, resp.TakenDays)
	assert.Equal(t, 7, resp.RemainingDays)
}

func TestLeaveSummary_RemainingNeverNegative(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	repo := &fakeReportRepo{leaves: []report.SummaryRecord{
		{Type: checkclock.TypeAnnualLeave, StartDate: &start, EndDate: &end},
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.LeaveSummary(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 15, resp.TakenDays)
	assert.Equal(t, 0, resp.RemainingDays)
}

func TestCompanyStats_CountsRecordsNotDays(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 6, 0, 0, 0, 0, time.Local)

	repo := &fakeReportRepo{company: []report.SummaryRecord{
		{Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusLate)},
		{Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusOnTime)},
		{Type: checkclock.TypeAnnualLeave, StartDate: &start, EndDate: &end},
		{Type: checkclock.TypeSickLeave},
		{Type: checkclock.TypeAbsent},
	}}
	svc := NewReportService(repo, 10)

	resp, err := svc.CompanyStats(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.OnTime)
	assert.Equal(t, 1, resp.Late)
	assert.Equal(t, 1, resp.Absent)
	// A 5-day leave is still one record here.
	assert.Equal(t, 1, resp.AnnualLeave)
	assert.Equal(t, 1, resp.SickLeave)
}

func TestRecentAttendance_NumbersAndLabels(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 8, 15, 0, 0, time.Local)

	repo := &fakeReportRepo{recent: []report.RecentRow{
		{EmployeeName: "Budi Santoso", Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusLate), Time: timePtr(clockIn)},
		{EmployeeName: "Siti Aminah", Type: checkclock.TypeClockIn, Status: statusPtr(checkclock.StatusOnTime), Time: timePtr(clockIn)},
		{EmployeeName: "Andi Wijaya", Type: checkclock.TypeAnnualLeave},
		{EmployeeName: "Dewi Lestari", Type: checkclock.TypeAbsent},
	}}
	svc := NewReportService(repo, 10)

	rows, err := svc.RecentAttendance(authContext(t), "2025-06")
	require.NoError(t, err)

	assert.Equal(t, 5, repo.recentLimit)

	require.Len(t, rows, 4)
	assert.Equal(t, 1, rows[0].No)
	assert.Equal(t, "Budi Santoso", rows[0].Name)
	assert.Equal(t, "Late", rows[0].Status)
	assert.Equal(t, "08:15", rows[0].CheckIn)

	assert.Equal(t, 2, rows[1].No)
	assert.Equal(t, "On Time", rows[1].Status)

	assert.Equal(t, "Annual Leave", rows[2].Status)
	assert.Equal(t, "-", rows[2].CheckIn)

	assert.Equal(t, "Absent", rows[3].Status)
}

func TestMonthRange(t *testing.T) {
	start, end, err := report.MonthRange("2025-06")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 0, time.Local), end)
}
