package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Company admin - manages attendance and schedules
	RoleUser  Role = "user"  // Regular employee
)

type User struct {
	ID        string
	CompanyID *string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user administers their company
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
