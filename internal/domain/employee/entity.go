package employee

import (
	"strings"
	"time"
)

// Employee is the directory projection the attendance core needs. Profile
// management lives in the main HRIS service.
type Employee struct {
	ID        string
	UserID    *string
	CompanyID string
	FirstName string
	LastName  *string
	Jobdesk   *string
	Branch    *string
	AvatarURL *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name, skipping an absent last name.
func (e Employee) FullName() string {
	parts := []string{e.FirstName}
	if e.LastName != nil && *e.LastName != "" {
		parts = append(parts, *e.LastName)
	}
	return strings.Join(parts, " ")
}
