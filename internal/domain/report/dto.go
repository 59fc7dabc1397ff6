package report

import (
	"time"
)

// ViewWeek buckets work hours Mon-Fri by weekday; ViewMonth buckets by
// Week 1-4 of the month.
const (
	ViewWeek  = "week"
	ViewMonth = "month"
)

// MonthRange expands a YYYY-MM string into the month's first instant and
// its 23:59:59 last instant.
func MonthRange(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}

	start := t
	end := t.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

type AttendanceSummaryResponse struct {
	OnTime      int `json:"on_time"`
	Late        int `json:"late"`
	Absent      int `json:"absent"`
	AnnualLeave int `json:"annual_leave"`
	SickLeave   int `json:"sick_leave"`
}

type WorkHoursPoint struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

type WorkHoursResponse struct {
	TotalMinutes int              `json:"total_minutes"`
	Series       []WorkHoursPoint `json:"series"`
}

type LeaveSummaryResponse struct {
	QuotaDays     int `json:"quota_days"`
	TakenDays     int `json:"taken_days"`
	RemainingDays int `json:"remaining_days"`
	AnnualLeave   int `json:"annual_leave"`
	SickLeave     int `json:"sick_leave"`
}

// CompanyStatsResponse counts a company's APPROVED records per category.
type CompanyStatsResponse struct {
	OnTime      int `json:"on_time"`
	Late        int `json:"late"`
	Absent      int `json:"absent"`
	AnnualLeave int `json:"annual_leave"`
	SickLeave   int `json:"sick_leave"`
}

type RecentAttendanceRow struct {
	No      int    `json:"no"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	CheckIn string `json:"check_in"`
}
