package checkclock

import (
	"time"
)

// Type is the attendance record category. ClockOut is accepted as a
// submission action but is never persisted as its own row: clocking out
// closes the employee's open ClockIn record.
type Type string

const (
	TypeClockIn     Type = "CLOCK_IN"
	TypeClockOut    Type = "CLOCK_OUT"
	TypeAbsent      Type = "ABSENT"
	TypeAnnualLeave Type = "ANNUAL_LEAVE"
	TypeSickLeave   Type = "SICK_LEAVE"
)

// AllowedTypes are the types accepted on submission.
var AllowedTypes = []string{
	string(TypeClockIn),
	string(TypeClockOut),
	string(TypeAbsent),
	string(TypeAnnualLeave),
	string(TypeSickLeave),
}

// Status marks punctuality of a clock-in. Nil for non-clock-in records.
type Status string

const (
	StatusOnTime Status = "ON_TIME"
	StatusLate   Status = "LATE"
)

// Approval is the record's workflow state.
type Approval string

const (
	ApprovalPending  Approval = "PENDING"
	ApprovalApproved Approval = "APPROVED"
	ApprovalRejected Approval = "REJECTED"
)

type CheckClock struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type

	// Time is the clock-in instant; nil for absence and leave records.
	Time         *time.Time
	ClockOutTime *time.Time

	// StartDate/EndDate bound absence and leave records; nil for clock-ins.
	StartDate *time.Time
	EndDate   *time.Time

	Status     *Status
	Approval   Approval
	ApprovedBy *string
	ApprovedAt *time.Time

	LocationName *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Notes        *string

	ProofURL          *string
	ProofName         *string
	ClockOutProofURL  *string
	ClockOutProofName *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName    *string
	EmployeeJobdesk *string
}

// IsLeave reports whether the record is a whole-day record rather than a
// clocked session.
func (c CheckClock) IsLeave() bool {
	return c.Type == TypeAbsent || c.Type == TypeAnnualLeave || c.Type == TypeSickLeave
}
