package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftSettingRepository struct {
	db *database.DB
}

// NewShiftSettingRepository creates a new shift setting repository
func NewShiftSettingRepository(db *database.DB) shift.SettingRepository {
	return &shiftSettingRepository{db: db}
}

// Create inserts a setting together with its day times, atomically.
func (r *shiftSettingRepository) Create(ctx context.Context, setting shift.ShiftSetting) (shift.ShiftSetting, error) {
	var created shift.ShiftSetting

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO shift_settings (id, name, type, is_active)
			VALUES (uuidv7(), $1, $2, $3)
			RETURNING id, name, type, is_active, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query, setting.Name, setting.Type, setting.IsActive).Scan(
			&created.ID,
			&created.Name,
			&created.Type,
			&created.IsActive,
			&created.CreatedAt,
			&created.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create shift setting: %w", err)
		}

		for _, t := range setting.Times {
			timeQuery := `
				INSERT INTO shift_setting_times (
					id, shift_setting_id, day,
					clock_in_minutes, clock_out_minutes,
					break_start_minutes, break_end_minutes
				)
				VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
				RETURNING id
			`

			var dt shift.DayTime
			err := tx.QueryRow(ctx, timeQuery,
				created.ID,
				t.Day,
				t.ClockInMinutes,
				t.ClockOutMinutes,
				t.BreakStartMinutes,
				t.BreakEndMinutes,
			).Scan(&dt.ID)
			if err != nil {
				return fmt.Errorf("failed to create shift setting time: %w", err)
			}

			dt.SettingID = created.ID
			dt.Day = t.Day
			dt.ClockInMinutes = t.ClockInMinutes
			dt.ClockOutMinutes = t.ClockOutMinutes
			dt.BreakStartMinutes = t.BreakStartMinutes
			dt.BreakEndMinutes = t.BreakEndMinutes
			created.Times = append(created.Times, dt)
		}

		return nil
	})
	if err != nil {
		return shift.ShiftSetting{}, err
	}

	return created, nil
}

func (r *shiftSettingRepository) loadTimes(ctx context.Context, q database.Querier, settingIDs []string) (map[string][]shift.DayTime, error) {
	if len(settingIDs) == 0 {
		return map[string][]shift.DayTime{}, nil
	}

	query := `
		SELECT id, shift_setting_id, day,
			clock_in_minutes, clock_out_minutes,
			break_start_minutes, break_end_minutes
		FROM shift_setting_times
		WHERE shift_setting_id = ANY($1)
		ORDER BY day
	`

	rows, err := q.Query(ctx, query, settingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift setting times: %w", err)
	}
	defer rows.Close()

	times := make(map[string][]shift.DayTime)
	for rows.Next() {
		var t shift.DayTime
		if err := rows.Scan(
			&t.ID,
			&t.SettingID,
			&t.Day,
			&t.ClockInMinutes,
			&t.ClockOutMinutes,
			&t.BreakStartMinutes,
			&t.BreakEndMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift setting time: %w", err)
		}
		times[t.SettingID] = append(times[t.SettingID], t)
	}

	return times, rows.Err()
}

// GetByID retrieves a setting with times
func (r *shiftSettingRepository) GetByID(ctx context.Context, id string) (shift.ShiftSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM shift_settings
		WHERE id = $1
	`

	var s shift.ShiftSetting
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Type,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftSetting{}, shift.ErrSettingNotFound
		}
		return shift.ShiftSetting{}, fmt.Errorf("failed to get shift setting: %w", err)
	}

	times, err := r.loadTimes(ctx, q, []string{s.ID})
	if err != nil {
		return shift.ShiftSetting{}, err
	}
	s.Times = times[s.ID]

	return s, nil
}

// GetActiveByName retrieves an active setting by exact name, nil when none
// exists
func (r *shiftSettingRepository) GetActiveByName(ctx context.Context, name string) (*shift.ShiftSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM shift_settings
		WHERE name = $1 AND is_active = true
		LIMIT 1
	`

	var s shift.ShiftSetting
	err := q.QueryRow(ctx, query, name).Scan(
		&s.ID,
		&s.Name,
		&s.Type,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift setting by name: %w", err)
	}

	times, err := r.loadTimes(ctx, q, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Times = times[s.ID]

	return &s, nil
}

// ListActive returns all active settings with times
func (r *shiftSettingRepository) ListActive(ctx context.Context) ([]shift.ShiftSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM shift_settings
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift settings: %w", err)
	}
	defer rows.Close()

	var settings []shift.ShiftSetting
	var ids []string
	for rows.Next() {
		var s shift.ShiftSetting
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Type,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift setting: %w", err)
		}
		settings = append(settings, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	times, err := r.loadTimes(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range settings {
		settings[i].Times = times[settings[i].ID]
	}

	return settings, nil
}
