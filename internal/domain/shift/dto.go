package shift

import (
	"strings"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

// DaySchedule is the HH:MM view of one weekday in requests and responses.
type DaySchedule struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
	IsOff bool    `json:"is_off"`
}

func validateSchedules(schedules map[string]DaySchedule) validator.ValidationErrors {
	var errs validator.ValidationErrors

	for dayName, day := range schedules {
		if _, ok := DayNumber(strings.ToLower(dayName)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "schedules." + dayName,
				Message: "unknown day name",
			})
			continue
		}

		if day.IsOff {
			continue
		}

		if day.Start == nil || day.End == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "schedules." + dayName,
				Message: "start and end are required for working days",
			})
			continue
		}

		startMin, startOK := validator.IsValidTimeOfDay(*day.Start)
		endMin, endOK := validator.IsValidTimeOfDay(*day.End)
		if !startOK || !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "schedules." + dayName,
				Message: "times must be in HH:MM format",
			})
			continue
		}

		if endMin <= startMin {
			errs = append(errs, validator.ValidationError{
				Field:   "schedules." + dayName,
				Message: "end must be after start",
			})
		}
	}

	return errs
}

type CreateShiftTypeRequest struct {
	Name      string                 `json:"name"`
	Type      string                 `json:"type"`
	Schedules map[string]DaySchedule `json:"schedules"`
}

func (r *CreateShiftTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Type == "" {
		r.Type = "regular"
	}

	if len(r.Schedules) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "schedules",
			Message: "schedules is required",
		})
	} else {
		errs = append(errs, validateSchedules(r.Schedules)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignScheduleRequest struct {
	EmployeeID    string  `json:"employee_id"`
	SettingID     string  `json:"setting_id"`
	EffectiveFrom *string `json:"effective_from,omitempty"` // YYYY-MM-DD, defaults to now
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.SettingID) {
		errs = append(errs, validator.ValidationError{
			Field:   "setting_id",
			Message: "setting_id is required",
		})
	}

	if r.EffectiveFrom != nil && *r.EffectiveFrom != "" {
		if _, valid := validator.IsValidDate(*r.EffectiveFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateScheduleRequest reassigns an employee to a shift type by name,
// creating the setting when the name is new.
type UpdateScheduleRequest struct {
	EmployeeID string                 `json:"-"`
	ShiftType  string                 `json:"shift_type"`
	Schedules  map[string]DaySchedule `json:"schedules"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftType) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type is required",
		})
	}

	if len(r.Schedules) > 0 {
		errs = append(errs, validateSchedules(r.Schedules)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListSchedulesFilter struct {
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *ListSchedulesFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayTimeResponse struct {
	Day        int     `json:"day"`
	ClockIn    *string `json:"clock_in"`
	ClockOut   *string `json:"clock_out"`
	BreakStart *string `json:"break_start"`
	BreakEnd   *string `json:"break_end"`
}

type ShiftTypeResponse struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Type  string            `json:"type"`
	Times []DayTimeResponse `json:"times"`
}

type AssignmentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	SettingID     string  `json:"setting_id"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to"`
}

// EmployeeScheduleResponse is one row of the admin schedule table: an
// employee with the weekly view of their current shift.
type EmployeeScheduleResponse struct {
	EmployeeID   string                 `json:"employee_id"`
	SettingID    *string                `json:"setting_id"`
	AssignmentID *string                `json:"assignment_id"`
	EmployeeName string                 `json:"employee_name"`
	Position     string                 `json:"position"`
	Branch       string                 `json:"branch"`
	ShiftType    string                 `json:"shift_type"`
	Schedules    map[string]DaySchedule `json:"schedules"`
}

type ListSchedulesResponse struct {
	Schedules  []EmployeeScheduleResponse `json:"schedules"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalCount int64                      `json:"total_count"`
	TotalPages int                        `json:"total_pages"`
}

type UnassignedEmployeeResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Branch     string `json:"branch"`
}

// WeeklySchedules renders a setting's day times as the full 7-day map,
// missing days shown as off.
func WeeklySchedules(setting *ShiftSetting) map[string]DaySchedule {
	out := make(map[string]DaySchedule, len(DayNames))
	for dayNum, dayName := range DayNames {
		if setting == nil {
			out[dayName] = DaySchedule{IsOff: true}
			continue
		}

		dt := setting.TimeForDay(dayNum)
		if dt == nil {
			out[dayName] = DaySchedule{IsOff: true}
			continue
		}

		out[dayName] = DaySchedule{
			Start: MinutesToTime(dt.ClockInMinutes),
			End:   MinutesToTime(dt.ClockOutMinutes),
			IsOff: dt.ClockInMinutes == nil && dt.ClockOutMinutes == nil,
		}
	}
	return out
}

// SettingTypeForName infers the setting type from a shift name the way the
// schedule UI labels them.
func SettingTypeForName(name string) string {
	if strings.Contains(strings.ToLower(name), "shift") {
		return "shift"
	}
	return "regular"
}
