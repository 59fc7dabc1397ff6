package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestDayNumber(t *testing.T) {
	num, ok := DayNumber("sunday")
	assert.True(t, ok)
	assert.Equal(t, 0, num)

	num, ok = DayNumber("monday")
	assert.True(t, ok)
	assert.Equal(t, 1, num)

	num, ok = DayNumber("saturday")
	assert.True(t, ok)
	assert.Equal(t, 6, num)

	_, ok = DayNumber("Monday")
	assert.False(t, ok)

	_, ok = DayNumber("funday")
	assert.False(t, ok)
}

func TestMinutesToTime(t *testing.T) {
	assert.Nil(t, MinutesToTime(nil))
	assert.Equal(t, "08:00", *MinutesToTime(intPtr(480)))
	assert.Equal(t, "00:00", *MinutesToTime(intPtr(0)))
	assert.Equal(t, "23:59", *MinutesToTime(intPtr(1439)))
	assert.Equal(t, "09:05", *MinutesToTime(intPtr(545)))
}

func TestTimeForDay(t *testing.T) {
	setting := ShiftSetting{Times: []DayTime{
		{Day: 1, ClockInMinutes: intPtr(480)},
		{Day: 2, ClockInMinutes: intPtr(540)},
	}}

	dt := setting.TimeForDay(2)
	require.NotNil(t, dt)
	assert.Equal(t, 540, *dt.ClockInMinutes)

	assert.Nil(t, setting.TimeForDay(0))
}

func TestWeeklySchedules(t *testing.T) {
	t.Run("nil setting renders all days off", func(t *testing.T) {
		out := WeeklySchedules(nil)
		require.Len(t, out, 7)
		for _, day := range out {
			assert.True(t, day.IsOff)
		}
	})

	t.Run("missing days render as off", func(t *testing.T) {
		setting := &ShiftSetting{Times: []DayTime{
			{Day: 1, ClockInMinutes: intPtr(480), ClockOutMinutes: intPtr(1020)},
		}}

		out := WeeklySchedules(setting)

		monday := out["monday"]
		assert.False(t, monday.IsOff)
		assert.Equal(t, "08:00", *monday.Start)
		assert.Equal(t, "17:00", *monday.End)

		assert.True(t, out["tuesday"].IsOff)
		assert.True(t, out["sunday"].IsOff)
	})

	t.Run("day entry without minutes is off", func(t *testing.T) {
		setting := &ShiftSetting{Times: []DayTime{{Day: 0}}}

		out := WeeklySchedules(setting)
		assert.True(t, out["sunday"].IsOff)
	})
}

func TestSettingTypeForName(t *testing.T) {
	assert.Equal(t, "shift", SettingTypeForName("Night Shift"))
	assert.Equal(t, "shift", SettingTypeForName("SHIFT PAGI"))
	assert.Equal(t, "regular", SettingTypeForName("Regular"))
	assert.Equal(t, "regular", SettingTypeForName("Office Hours"))
}

func TestCreateShiftTypeRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := CreateShiftTypeRequest{
			Name: "Regular",
			Schedules: map[string]DaySchedule{
				"monday": {Start: strPtr("08:00"), End: strPtr("17:00")},
				"sunday": {IsOff: true},
			},
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, "regular", req.Type)
	})

	t.Run("missing name and schedules", func(t *testing.T) {
		req := CreateShiftTypeRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("unknown day name", func(t *testing.T) {
		req := CreateShiftTypeRequest{
			Name: "Regular",
			Schedules: map[string]DaySchedule{
				"someday": {Start: strPtr("08:00"), End: strPtr("17:00")},
			},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("working day without times", func(t *testing.T) {
		req := CreateShiftTypeRequest{
			Name: "Regular",
			Schedules: map[string]DaySchedule{
				"monday": {},
			},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := CreateShiftTypeRequest{
			Name: "Regular",
			Schedules: map[string]DaySchedule{
				"monday": {Start: strPtr("17:00"), End: strPtr("08:00")},
			},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("bad time format", func(t *testing.T) {
		req := CreateShiftTypeRequest{
			Name: "Regular",
			Schedules: map[string]DaySchedule{
				"monday": {Start: strPtr("8 AM"), End: strPtr("5 PM")},
			},
		}
		assert.Error(t, req.Validate())
	})
}

func TestAssignScheduleRequest_Validate(t *testing.T) {
	valid := AssignScheduleRequest{EmployeeID: "emp-1", SettingID: "setting-1"}
	assert.NoError(t, valid.Validate())

	withDate := AssignScheduleRequest{EmployeeID: "emp-1", SettingID: "setting-1", EffectiveFrom: strPtr("2025-06-01")}
	assert.NoError(t, withDate.Validate())

	badDate := AssignScheduleRequest{EmployeeID: "emp-1", SettingID: "setting-1", EffectiveFrom: strPtr("01/06/2025")}
	assert.Error(t, badDate.Validate())

	missing := AssignScheduleRequest{}
	assert.Error(t, missing.Validate())
}

func TestListSchedulesFilter_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := ListSchedulesFilter{}
		require.NoError(t, f.Validate())
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 10, f.Limit)
	})

	t.Run("negative page", func(t *testing.T) {
		f := ListSchedulesFilter{Page: -1}
		assert.Error(t, f.Validate())
	})

	t.Run("limit too large", func(t *testing.T) {
		f := ListSchedulesFilter{Limit: 1000}
		assert.Error(t, f.Validate())
	})
}
