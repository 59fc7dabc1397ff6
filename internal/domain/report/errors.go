package report

import "errors"

// Report domain errors
var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	ErrInvalidView  = errors.New("view must be week or month")
)
