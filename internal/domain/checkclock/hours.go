package checkclock

import (
	"fmt"
	"time"
)

// WorkMinutes returns whole minutes between clock-in and clock-out,
// truncated toward zero.
func WorkMinutes(clockIn, clockOut time.Time) int {
	return int(clockOut.Sub(clockIn) / time.Minute)
}

// FormatWorkHours renders a minute total as "N jam M menit", omitting the
// menit part when the remainder is zero.
func FormatWorkHours(totalMinutes int) string {
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if minutes > 0 {
		return fmt.Sprintf("%d jam %d menit", hours, minutes)
	}
	return fmt.Sprintf("%d jam", hours)
}

// LeaveDays counts calendar days in a leave range, inclusive of both ends.
func LeaveDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate)/(24*time.Hour)) + 1
}

// MinutesOfDay converts an instant to minutes since local midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DetermineStatus compares the actual clock-in minute against the scheduled
// one. Arriving exactly on the scheduled minute is on time.
func DetermineStatus(actualMinutes, scheduledMinutes int) Status {
	if actualMinutes > scheduledMinutes {
		return StatusLate
	}
	return StatusOnTime
}

// DayBounds returns the start of day and the 23:59:59.999 end of day for
// the given instant, in its location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, 999000000, t.Location())
	return start, end
}
