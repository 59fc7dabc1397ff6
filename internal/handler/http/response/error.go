package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Check-clock errors
	case errors.Is(err, checkclock.ErrAlreadyClockedIn):
		Conflict(w, "An active clock in session already exists")
	case errors.Is(err, checkclock.ErrNoActiveClockIn):
		BadRequest(w, "No active clock in found", nil)
	case errors.Is(err, checkclock.ErrInvalidType):
		BadRequest(w, "Invalid check clock type", nil)
	case errors.Is(err, checkclock.ErrCheckClockNotFound):
		NotFound(w, "Check clock record not found")
	case errors.Is(err, checkclock.ErrForbidden):
		Forbidden(w, "Employee belongs to another company")

	// Shift errors
	case errors.Is(err, shift.ErrSettingNotFound):
		NotFound(w, "Shift setting not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrForbidden):
		Forbidden(w, "Employee belongs to another company")

	// Report errors
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, report.ErrInvalidView):
		BadRequest(w, "View must be 'week' or 'month'", nil)

	// Directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
