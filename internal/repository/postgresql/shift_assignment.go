package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

// NewShiftAssignmentRepository creates a new shift assignment repository
func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// Assign closes the current assignment and inserts the new one in one
// transaction, so the uq_active_assignment partial unique index never sees
// two open rows for the same employee.
func (r *shiftAssignmentRepository) Assign(ctx context.Context, employeeID string, settingID string, effectiveFrom time.Time) (shift.ShiftAssignment, error) {
	var created shift.ShiftAssignment

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		closeQuery := `
			UPDATE shift_assignments
			SET effective_to = NOW()
			WHERE employee_id = $1 AND effective_to IS NULL
		`
		if _, err := tx.Exec(ctx, closeQuery, employeeID); err != nil {
			return fmt.Errorf("failed to close current assignment: %w", err)
		}

		insertQuery := `
			INSERT INTO shift_assignments (id, employee_id, shift_setting_id, effective_from, effective_to)
			VALUES (uuidv7(), $1, $2, $3, NULL)
			RETURNING id, employee_id, shift_setting_id, effective_from, effective_to, created_at
		`
		err := tx.QueryRow(ctx, insertQuery, employeeID, settingID, effectiveFrom).Scan(
			&created.ID,
			&created.EmployeeID,
			&created.ShiftSettingID,
			&created.EffectiveFrom,
			&created.EffectiveTo,
			&created.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		return nil
	})
	if err != nil {
		return shift.ShiftAssignment{}, err
	}

	return created, nil
}

// CloseActive ends the employee's current assignment
func (r *shiftAssignmentRepository) CloseActive(ctx context.Context, employeeID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments
		SET effective_to = $2
		WHERE employee_id = $1 AND effective_to IS NULL
	`

	if _, err := q.Exec(ctx, query, employeeID, at); err != nil {
		return fmt.Errorf("failed to close assignment: %w", err)
	}

	return nil
}

// GetEffectiveDayTime resolves the working window in force for an employee
// on a date. The latest effectiveFrom wins when history rows overlap.
func (r *shiftAssignmentRepository) GetEffectiveDayTime(ctx context.Context, employeeID string, onDate time.Time) (*shift.DayTime, error) {
	q := GetQuerier(ctx, r.db)

	day := int(onDate.Weekday())

	query := `
		SELECT t.id, t.shift_setting_id, t.day,
			t.clock_in_minutes, t.clock_out_minutes,
			t.break_start_minutes, t.break_end_minutes
		FROM shift_assignments a
		JOIN shift_setting_times t
			ON t.shift_setting_id = a.shift_setting_id AND t.day = $3
		WHERE a.employee_id = $1
			AND a.effective_from <= $2
			AND (a.effective_to IS NULL OR a.effective_to >= $2)
		ORDER BY a.effective_from DESC
		LIMIT 1
	`

	var t shift.DayTime
	err := q.QueryRow(ctx, query, employeeID, onDate, day).Scan(
		&t.ID,
		&t.SettingID,
		&t.Day,
		&t.ClockInMinutes,
		&t.ClockOutMinutes,
		&t.BreakStartMinutes,
		&t.BreakEndMinutes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve effective day time: %w", err)
	}

	return &t, nil
}

// ListCompanySchedules pages employees of a company with their current
// setting
func (r *shiftAssignmentRepository) ListCompanySchedules(ctx context.Context, companyID string, search *string, page, limit int) ([]shift.EmployeeScheduleRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "e.company_id = $1"
	args := []interface{}{companyID}

	if search != nil && *search != "" {
		whereClause += ` AND (
			e.first_name ILIKE $2
			OR COALESCE(e.last_name, '') ILIKE $2
			OR COALESCE(e.jobdesk, '') ILIKE $2
			OR COALESCE(e.branch, '') ILIKE $2
		)`
		args = append(args, "%"+*search+"%")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')),
			e.jobdesk, e.branch,
			a.id,
			s.id, s.name, s.type, s.is_active, s.created_at, s.updated_at
		FROM employees e
		LEFT JOIN LATERAL (
			SELECT id, shift_setting_id
			FROM shift_assignments
			WHERE employee_id = e.id
				AND (effective_to IS NULL OR effective_to >= NOW())
			ORDER BY effective_from DESC
			LIMIT 1
		) a ON true
		LEFT JOIN shift_settings s ON s.id = a.shift_setting_id
		WHERE %s
		ORDER BY e.first_name, e.last_name
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)+1, len(args)+2)

	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list company schedules: %w", err)
	}
	defer rows.Close()

	var out []shift.EmployeeScheduleRow
	var settingIDs []string
	for rows.Next() {
		var row shift.EmployeeScheduleRow
		var settingID, settingName, settingType *string
		var settingActive *bool
		var settingCreated, settingUpdated *time.Time

		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Jobdesk,
			&row.Branch,
			&row.AssignmentID,
			&settingID,
			&settingName,
			&settingType,
			&settingActive,
			&settingCreated,
			&settingUpdated,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule row: %w", err)
		}

		if settingID != nil {
			row.Setting = &shift.ShiftSetting{
				ID:        *settingID,
				Name:      *settingName,
				Type:      *settingType,
				IsActive:  *settingActive,
				CreatedAt: *settingCreated,
				UpdatedAt: *settingUpdated,
			}
			settingIDs = append(settingIDs, *settingID)
		}

		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(settingIDs) > 0 {
		settingRepo := shiftSettingRepository{db: r.db}
		times, err := settingRepo.loadTimes(ctx, q, settingIDs)
		if err != nil {
			return nil, 0, err
		}
		for i := range out {
			if out[i].Setting != nil {
				out[i].Setting.Times = times[out[i].Setting.ID]
			}
		}
	}

	return out, total, nil
}

// ListUnassigned returns employees of a company with no active assignment
func (r *shiftAssignmentRepository) ListUnassigned(ctx context.Context, companyID string) ([]shift.EmployeeScheduleRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			TRIM(e.first_name || ' ' || COALESCE(e.last_name, '')),
			e.jobdesk, e.branch
		FROM employees e
		WHERE e.company_id = $1
			AND NOT EXISTS (
				SELECT 1 FROM shift_assignments a
				WHERE a.employee_id = e.id AND a.effective_to IS NULL
			)
		ORDER BY e.first_name, e.last_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned employees: %w", err)
	}
	defer rows.Close()

	var out []shift.EmployeeScheduleRow
	for rows.Next() {
		var row shift.EmployeeScheduleRow
		if err := rows.Scan(
			&row.EmployeeID,
			&row.EmployeeName,
			&row.Jobdesk,
			&row.Branch,
		); err != nil {
			return nil, fmt.Errorf("failed to scan unassigned employee: %w", err)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
