package shift

import (
	"fmt"
	"time"
)

// Weekday numbering follows time.Weekday: 0=Sunday .. 6=Saturday.
var DayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// DayNumber maps a lowercase day name back to its weekday number.
func DayNumber(name string) (int, bool) {
	for i, n := range DayNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// MinutesToTime renders minutes since midnight as HH:MM. Nil stays nil
// (day off).
func MinutesToTime(minutes *int) *string {
	if minutes == nil {
		return nil
	}
	s := fmt.Sprintf("%02d:%02d", *minutes/60, *minutes%60)
	return &s
}

// ShiftSetting is a named weekly working-time template.
type ShiftSetting struct {
	ID        string
	Name      string
	Type      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Times []DayTime
}

// DayTime holds one weekday's working window. Nil clock minutes mean the
// day is off.
type DayTime struct {
	ID                string
	SettingID         string
	Day               int
	ClockInMinutes    *int
	ClockOutMinutes   *int
	BreakStartMinutes *int
	BreakEndMinutes   *int
}

// TimeForDay returns the setting's entry for a weekday, or nil when the
// setting has none.
func (s ShiftSetting) TimeForDay(day int) *DayTime {
	for i := range s.Times {
		if s.Times[i].Day == day {
			return &s.Times[i]
		}
	}
	return nil
}

// ShiftAssignment binds an employee to a setting for a period. EffectiveTo
// nil means the assignment is current. History rows are closed, never
// deleted.
type ShiftAssignment struct {
	ID             string
	EmployeeID     string
	ShiftSettingID string
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	CreatedAt      time.Time
}
