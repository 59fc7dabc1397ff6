package shift

import (
	"context"
	"time"
)

// Service defines business logic for schedule administration. All methods
// are scoped to the admin's company from the request claims.
type Service interface {
	// ListSchedules pages the company's employees with their weekly schedules
	ListSchedules(ctx context.Context, filter ListSchedulesFilter) (ListSchedulesResponse, error)

	// ListShiftTypes returns the active shift settings
	ListShiftTypes(ctx context.Context) ([]ShiftTypeResponse, error)

	// CreateShiftType creates a named weekly template
	CreateShiftType(ctx context.Context, req CreateShiftTypeRequest) (ShiftTypeResponse, error)

	// Assign gives an employee a new current assignment, closing the old one
	Assign(ctx context.Context, req AssignScheduleRequest) (AssignmentResponse, error)

	// UpdateSchedule reassigns by shift-type name, creating the setting when
	// the name is new
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) error

	// RemoveSchedule ends the employee's current assignment
	RemoveSchedule(ctx context.Context, employeeID string) error

	// ListUnassigned returns employees without an active schedule
	ListUnassigned(ctx context.Context) ([]UnassignedEmployeeResponse, error)
}

// Resolver answers what time an employee is scheduled to start on a date.
// Nil means no schedule applies (day off, no assignment, or no data) and
// callers fall back to the company default.
type Resolver interface {
	ScheduledClockInMinutes(ctx context.Context, employeeID string, onDate time.Time) (*int, error)
}
