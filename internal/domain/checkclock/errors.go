package checkclock

import "errors"

// Check-clock domain errors
var (
	ErrAlreadyClockedIn   = errors.New("you are still clocked in and have not clocked out")
	ErrNoActiveClockIn    = errors.New("no active clock in")
	ErrInvalidType        = errors.New("invalid attendance type")
	ErrCheckClockNotFound = errors.New("check clock record not found")
	ErrForbidden          = errors.New("not allowed to access this record")
)
