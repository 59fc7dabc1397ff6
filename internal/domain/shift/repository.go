package shift

import (
	"context"
	"time"
)

// SettingRepository defines data access for shift settings and their day
// times.
type SettingRepository interface {
	// Create inserts a setting together with its day times
	Create(ctx context.Context, setting ShiftSetting) (ShiftSetting, error)

	// GetByID retrieves a setting with times
	GetByID(ctx context.Context, id string) (ShiftSetting, error)

	// GetActiveByName retrieves an active setting by exact name, nil when
	// none exists
	GetActiveByName(ctx context.Context, name string) (*ShiftSetting, error)

	// ListActive returns all active settings with times
	ListActive(ctx context.Context) ([]ShiftSetting, error)
}

// EmployeeScheduleRow is one employee joined with their current assignment
// and setting. Setting is nil for unassigned employees.
type EmployeeScheduleRow struct {
	EmployeeID   string
	EmployeeName string
	Jobdesk      *string
	Branch       *string
	AssignmentID *string
	Setting      *ShiftSetting
}

// AssignmentRepository defines data access for effective-dated shift
// assignments.
type AssignmentRepository interface {
	// Assign closes the employee's current assignment (if any) and inserts
	// the new one, atomically.
	Assign(ctx context.Context, employeeID string, settingID string, effectiveFrom time.Time) (ShiftAssignment, error)

	// CloseActive ends the employee's current assignment. Closing when none
	// is active is not an error.
	CloseActive(ctx context.Context, employeeID string, at time.Time) error

	// GetEffectiveDayTime resolves the day time in force for an employee on
	// a date: the assignment effective on that date (latest effectiveFrom
	// wins), then its setting's entry for the date's weekday. Nil when the
	// employee has no assignment or the setting has no entry for that day.
	GetEffectiveDayTime(ctx context.Context, employeeID string, onDate time.Time) (*DayTime, error)

	// ListCompanySchedules pages employees of a company with their current
	// setting and times
	ListCompanySchedules(ctx context.Context, companyID string, search *string, page, limit int) ([]EmployeeScheduleRow, int64, error)

	// ListUnassigned returns employees of a company with no active assignment
	ListUnassigned(ctx context.Context, companyID string) ([]EmployeeScheduleRow, error)
}
