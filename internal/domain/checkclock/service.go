package checkclock

import (
	"context"
)

// Service defines business logic for check-clock operations. Identity is
// read from the request context claims.
type Service interface {
	// Submit processes an employee's own submission: clock-in, clock-out,
	// absence or leave. Self-service records start PENDING.
	Submit(ctx context.Context, req SubmitRequest) (CheckClockResponse, error)

	// AdminSubmit records attendance on behalf of any employee in the
	// admin's company. Records are created APPROVED with the approver stamped.
	AdminSubmit(ctx context.Context, req AdminSubmitRequest) (CheckClockResponse, error)

	// ListMine returns the authenticated employee's records
	ListMine(ctx context.Context) ([]MyCheckClockResponse, error)

	// ListCompany returns all records of the admin's company
	ListCompany(ctx context.Context) ([]CheckClockResponse, error)

	// Get returns one record of the admin's company
	Get(ctx context.Context, id string) (CheckClockResponse, error)

	// Decide approves or rejects a record and notifies the employee
	Decide(ctx context.Context, req DecideRequest) (CheckClockResponse, error)

	// AutoClockOut force-closes stale open sessions past the daily cutoff.
	// Before the cutoff it does nothing. Returns the number of sessions closed.
	AutoClockOut(ctx context.Context) (int64, error)
}
