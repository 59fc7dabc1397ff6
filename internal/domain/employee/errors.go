package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoLinkedUser     = errors.New("employee has no linked user account")
)
