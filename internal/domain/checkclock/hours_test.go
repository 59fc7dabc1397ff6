package checkclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkMinutes(t *testing.T) {
	in := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 540, WorkMinutes(in, in.Add(9*time.Hour)))
	assert.Equal(t, 542, WorkMinutes(in, in.Add(9*time.Hour+2*time.Minute)))
	// Partial minutes truncate
	assert.Equal(t, 0, WorkMinutes(in, in.Add(59*time.Second)))
	assert.Equal(t, 1, WorkMinutes(in, in.Add(61*time.Second)))
}

func TestFormatWorkHours(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{540, "9 jam"},
		{542, "9 jam 2 menit"},
		{60, "1 jam"},
		{59, "0 jam 59 menit"},
		{0, "0 jam"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatWorkHours(tt.minutes))
	}
}

func TestLeaveDays(t *testing.T) {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Single day counts as one
	assert.Equal(t, 1, LeaveDays(start, start))
	assert.Equal(t, 3, LeaveDays(start, start.AddDate(0, 0, 2)))
	// End-of-day timestamps don't add a day
	assert.Equal(t, 1, LeaveDays(start, start.Add(23*time.Hour+59*time.Minute)))
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 480, MinutesOfDay(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, 495, MinutesOfDay(time.Date(2025, 6, 2, 8, 15, 30, 0, time.UTC)))
	assert.Equal(t, 0, MinutesOfDay(time.Date(2025, 6, 2, 0, 0, 59, 0, time.UTC)))
	assert.Equal(t, 1439, MinutesOfDay(time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)))
}

func TestDetermineStatus(t *testing.T) {
	// On time at or before the scheduled minute
	assert.Equal(t, StatusOnTime, DetermineStatus(479, 480))
	assert.Equal(t, StatusOnTime, DetermineStatus(480, 480))
	assert.Equal(t, StatusLate, DetermineStatus(481, 480))
}

func TestDayBounds(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Jakarta")
	now := time.Date(2025, 6, 2, 14, 30, 45, 0, loc)

	start, end := DayBounds(now)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, loc, end.Location())
	assert.True(t, end.After(now))
}
