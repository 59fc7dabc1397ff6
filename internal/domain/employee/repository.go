package employee

import (
	"context"
)

// Repository is the read-only employee directory used by the attendance
// core.
type Repository interface {
	// GetByID retrieves an employee
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActiveByCompanyID returns a company's active employees
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
