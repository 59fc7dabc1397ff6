package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

// GetByID retrieves a user
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	var role string
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.CompanyID,
		&u.Email,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.Role = user.Role(role)
	return u, nil
}

// GetByEmployeeID resolves the user linked to an employee, nil when the
// employee has no account
func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.email, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN employees e ON e.user_id = u.id
		WHERE e.id = $1
	`

	var u user.User
	var role string
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&u.ID,
		&u.CompanyID,
		&u.Email,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by employee: %w", err)
	}

	u.Role = user.Role(role)
	return &u, nil
}

// GetAdminsByCompanyID returns a company's admin users
func (r *userRepository) GetAdminsByCompanyID(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, email, role, created_at, updated_at
		FROM users
		WHERE company_id = $1 AND role = 'admin'
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		var role string
		if err := rows.Scan(
			&u.ID,
			&u.CompanyID,
			&u.Email,
			&role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Role = user.Role(role)
		users = append(users, u)
	}

	return users, rows.Err()
}
