package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type checkClockRepository struct {
	db *database.DB
}

// NewCheckClockRepository creates a new check-clock repository
func NewCheckClockRepository(db *database.DB) checkclock.Repository {
	return &checkClockRepository{db: db}
}

const checkClockColumns = `
	id, employee_id, company_id, type, time, clock_out_time,
	start_date, end_date, status, approval, approved_by, approved_at,
	location_name, address, latitude, longitude, notes,
	proof_url, proof_name, clock_out_proof_url, clock_out_proof_name,
	created_at, updated_at`

func scanCheckClock(row pgx.Row) (checkclock.CheckClock, error) {
	var c checkclock.CheckClock
	var recordType string
	var status *string

	err := row.Scan(
		&c.ID,
		&c.EmployeeID,
		&c.CompanyID,
		&recordType,
		&c.Time,
		&c.ClockOutTime,
		&c.StartDate,
		&c.EndDate,
		&status,
		&c.Approval,
		&c.ApprovedBy,
		&c.ApprovedAt,
		&c.LocationName,
		&c.Address,
		&c.Latitude,
		&c.Longitude,
		&c.Notes,
		&c.ProofURL,
		&c.ProofName,
		&c.ClockOutProofURL,
		&c.ClockOutProofName,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return checkclock.CheckClock{}, err
	}

	c.Type = checkclock.Type(recordType)
	if status != nil {
		s := checkclock.Status(*status)
		c.Status = &s
	}

	return c, nil
}

// Create inserts a new record. The uq_open_clock_in partial unique index
// rejects a second open clock-in for the same employee.
func (r *checkClockRepository) Create(ctx context.Context, record checkclock.CheckClock) (checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	var status *string
	if record.Status != nil {
		s := string(*record.Status)
		status = &s
	}

	query := `
		INSERT INTO check_clocks (
			id, employee_id, company_id, type, time, clock_out_time,
			start_date, end_date, status, approval, approved_by, approved_at,
			location_name, address, latitude, longitude, notes,
			proof_url, proof_name
		)
		VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18
		)
		RETURNING ` + checkClockColumns

	created, err := scanCheckClock(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CompanyID,
		string(record.Type),
		record.Time,
		record.ClockOutTime,
		record.StartDate,
		record.EndDate,
		status,
		string(record.Approval),
		record.ApprovedBy,
		record.ApprovedAt,
		record.LocationName,
		record.Address,
		record.Latitude,
		record.Longitude,
		record.Notes,
		record.ProofURL,
		record.ProofName,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_open_clock_in" {
			return checkclock.CheckClock{}, checkclock.ErrAlreadyClockedIn
		}
		return checkclock.CheckClock{}, fmt.Errorf("failed to create check clock: %w", err)
	}

	return created, nil
}

// GetByID retrieves a record with employee info, company-scoped
func (r *checkClockRepository) GetByID(ctx context.Context, id string, companyID string) (checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			cc.id, cc.employee_id, cc.company_id, cc.type, cc.time, cc.clock_out_time,
			cc.start_date, cc.end_date, cc.status, cc.approval, cc.approved_by, cc.approved_at,
			cc.location_name, cc.address, cc.latitude, cc.longitude, cc.notes,
			cc.proof_url, cc.proof_name, cc.clock_out_proof_url, cc.clock_out_proof_name,
			cc.created_at, cc.updated_at,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')), e.jobdesk
		FROM check_clocks cc
		JOIN employees e ON e.id = cc.employee_id
		WHERE cc.id = $1 AND cc.company_id = $2
	`

	var c checkclock.CheckClock
	var recordType string
	var status *string

	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&c.ID,
		&c.EmployeeID,
		&c.CompanyID,
		&recordType,
		&c.Time,
		&c.ClockOutTime,
		&c.StartDate,
		&c.EndDate,
		&status,
		&c.Approval,
		&c.ApprovedBy,
		&c.ApprovedAt,
		&c.LocationName,
		&c.Address,
		&c.Latitude,
		&c.Longitude,
		&c.Notes,
		&c.ProofURL,
		&c.ProofName,
		&c.ClockOutProofURL,
		&c.ClockOutProofName,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.EmployeeName,
		&c.EmployeeJobdesk,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return checkclock.CheckClock{}, checkclock.ErrCheckClockNotFound
		}
		return checkclock.CheckClock{}, fmt.Errorf("failed to get check clock: %w", err)
	}

	c.Type = checkclock.Type(recordType)
	if status != nil {
		s := checkclock.Status(*status)
		c.Status = &s
	}

	return c, nil
}

// GetOpenSession returns the most recent open clock-in, nil when the
// employee has none
func (r *checkClockRepository) GetOpenSession(ctx context.Context, employeeID string) (*checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkClockColumns + `
		FROM check_clocks
		WHERE employee_id = $1
			AND type = 'CLOCK_IN'
			AND clock_out_time IS NULL
		ORDER BY time DESC
		LIMIT 1
	`

	c, err := scanCheckClock(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &c, nil
}

// CloseSession sets the clock-out fields on an open session
func (r *checkClockRepository) CloseSession(ctx context.Context, id string, params checkclock.CloseSessionParams) (checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE check_clocks
		SET clock_out_time = $2,
			approved_by = COALESCE($3, approved_by),
			approved_at = COALESCE($4, approved_at),
			clock_out_proof_url = COALESCE($5, clock_out_proof_url),
			clock_out_proof_name = COALESCE($6, clock_out_proof_name),
			updated_at = NOW()
		WHERE id = $1 AND clock_out_time IS NULL
		RETURNING ` + checkClockColumns

	c, err := scanCheckClock(q.QueryRow(ctx, query,
		id,
		params.ClockOutTime,
		params.ApprovedBy,
		params.ApprovedAt,
		params.ClockOutProofURL,
		params.ClockOutProofName,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return checkclock.CheckClock{}, checkclock.ErrNoActiveClockIn
		}
		return checkclock.CheckClock{}, fmt.Errorf("failed to close session: %w", err)
	}

	return c, nil
}

// ListByEmployee returns all records for one employee, newest first
func (r *checkClockRepository) ListByEmployee(ctx context.Context, employeeID string) ([]checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkClockColumns + `
		FROM check_clocks
		WHERE employee_id = $1
		ORDER BY time DESC NULLS LAST, start_date DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check clocks: %w", err)
	}
	defer rows.Close()

	var records []checkclock.CheckClock
	for rows.Next() {
		c, err := scanCheckClock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check clock: %w", err)
		}
		records = append(records, c)
	}

	return records, rows.Err()
}

// ListByCompany returns all records for a company with employee info,
// newest first
func (r *checkClockRepository) ListByCompany(ctx context.Context, companyID string) ([]checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			cc.id, cc.employee_id, cc.company_id, cc.type, cc.time, cc.clock_out_time,
			cc.start_date, cc.end_date, cc.status, cc.approval, cc.approved_by, cc.approved_at,
			cc.location_name, cc.address, cc.latitude, cc.longitude, cc.notes,
			cc.proof_url, cc.proof_name, cc.clock_out_proof_url, cc.clock_out_proof_name,
			cc.created_at, cc.updated_at,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')), e.jobdesk
		FROM check_clocks cc
		JOIN employees e ON e.id = cc.employee_id
		WHERE cc.company_id = $1
		ORDER BY cc.time DESC NULLS LAST, cc.start_date DESC NULLS LAST
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company check clocks: %w", err)
	}
	defer rows.Close()

	var records []checkclock.CheckClock
	for rows.Next() {
		var c checkclock.CheckClock
		var recordType string
		var status *string

		if err := rows.Scan(
			&c.ID,
			&c.EmployeeID,
			&c.CompanyID,
			&recordType,
			&c.Time,
			&c.ClockOutTime,
			&c.StartDate,
			&c.EndDate,
			&status,
			&c.Approval,
			&c.ApprovedBy,
			&c.ApprovedAt,
			&c.LocationName,
			&c.Address,
			&c.Latitude,
			&c.Longitude,
			&c.Notes,
			&c.ProofURL,
			&c.ProofName,
			&c.ClockOutProofURL,
			&c.ClockOutProofName,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.EmployeeName,
			&c.EmployeeJobdesk,
		); err != nil {
			return nil, fmt.Errorf("failed to scan check clock: %w", err)
		}

		c.Type = checkclock.Type(recordType)
		if status != nil {
			s := checkclock.Status(*status)
			c.Status = &s
		}

		records = append(records, c)
	}

	return records, rows.Err()
}

// UpdateApproval overwrites the approval state and approver stamp
func (r *checkClockRepository) UpdateApproval(ctx context.Context, id string, approval checkclock.Approval, approvedBy string, approvedAt time.Time) (checkclock.CheckClock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE check_clocks
		SET approval = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + checkClockColumns

	c, err := scanCheckClock(q.QueryRow(ctx, query, id, string(approval), approvedBy, approvedAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			return checkclock.CheckClock{}, checkclock.ErrCheckClockNotFound
		}
		return checkclock.CheckClock{}, fmt.Errorf("failed to update approval: %w", err)
	}

	return c, nil
}

// AutoClockOut closes every open clock-in started before the cutoff. A
// single conditional UPDATE keeps the sweep idempotent under concurrency.
func (r *checkClockRepository) AutoClockOut(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE check_clocks
		SET clock_out_time = $1, updated_at = NOW()
		WHERE type = 'CLOCK_IN'
			AND clock_out_time IS NULL
			AND time < $1
	`

	tag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to auto clock out: %w", err)
	}

	return tag.RowsAffected(), nil
}
