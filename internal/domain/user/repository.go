package user

import (
	"context"
)

// Repository is the read-only user directory used for notification
// recipients.
type Repository interface {
	// GetByID retrieves a user
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmployeeID resolves the user linked to an employee, nil when the
	// employee has no account
	GetByEmployeeID(ctx context.Context, employeeID string) (*User, error)

	// GetAdminsByCompanyID returns a company's admin users
	GetAdminsByCompanyID(ctx context.Context, companyID string) ([]User, error)
}
