package shift

import "errors"

// Shift domain errors
var (
	ErrSettingNotFound    = errors.New("shift setting not found")
	ErrAssignmentNotFound = errors.New("employee has no active schedule")
	ErrForbidden          = errors.New("employee does not belong to your company")
)
