package shift

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type ShiftServiceImpl struct {
	settingRepo     shift.SettingRepository
	assignmentRepo  shift.AssignmentRepository
	employeeRepo    employee.Repository
	userRepo        user.Repository
	notificationSvc notification.Service
	clock           clock.Clock
}

func NewShiftService(
	settingRepo shift.SettingRepository,
	assignmentRepo shift.AssignmentRepository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	notificationSvc notification.Service,
	clk clock.Clock,
) shift.Service {
	return &ShiftServiceImpl{
		settingRepo:     settingRepo,
		assignmentRepo:  assignmentRepo,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		clock:           clk,
	}
}

func companyClaims(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

// ListSchedules implements shift.Service.
func (s *ShiftServiceImpl) ListSchedules(ctx context.Context, filter shift.ListSchedulesFilter) (shift.ListSchedulesResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListSchedulesResponse{}, err
	}

	companyID, _, err := companyClaims(ctx)
	if err != nil {
		return shift.ListSchedulesResponse{}, err
	}

	rows, total, err := s.assignmentRepo.ListCompanySchedules(ctx, companyID, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return shift.ListSchedulesResponse{}, err
	}

	schedules := make([]shift.EmployeeScheduleResponse, 0, len(rows))
	for _, row := range rows {
		item := shift.EmployeeScheduleResponse{
			EmployeeID:   row.EmployeeID,
			AssignmentID: row.AssignmentID,
			EmployeeName: row.EmployeeName,
			Position:     strValue(row.Jobdesk),
			Branch:       strValue(row.Branch),
			ShiftType:    "Unassigned",
			Schedules:    shift.WeeklySchedules(row.Setting),
		}
		if row.Setting != nil {
			item.SettingID = &row.Setting.ID
			item.ShiftType = row.Setting.Name
		}
		schedules = append(schedules, item)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return shift.ListSchedulesResponse{
		Schedules:  schedules,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// ListShiftTypes implements shift.Service.
func (s *ShiftServiceImpl) ListShiftTypes(ctx context.Context) ([]shift.ShiftTypeResponse, error) {
	if _, _, err := companyClaims(ctx); err != nil {
		return nil, err
	}

	settings, err := s.settingRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]shift.ShiftTypeResponse, 0, len(settings))
	for _, setting := range settings {
		out = append(out, toShiftTypeResponse(setting))
	}

	return out, nil
}

// CreateShiftType implements shift.Service.
func (s *ShiftServiceImpl) CreateShiftType(ctx context.Context, req shift.CreateShiftTypeRequest) (shift.ShiftTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	if _, _, err := companyClaims(ctx); err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	setting := shift.ShiftSetting{
		Name:     req.Name,
		Type:     req.Type,
		IsActive: true,
		Times:    timesFromSchedules(req.Schedules),
	}

	created, err := s.settingRepo.Create(ctx, setting)
	if err != nil {
		return shift.ShiftTypeResponse{}, err
	}

	return toShiftTypeResponse(created), nil
}

// Assign implements shift.Service.
func (s *ShiftServiceImpl) Assign(ctx context.Context, req shift.AssignScheduleRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	companyID, userID, err := companyClaims(ctx)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	if emp.CompanyID != companyID {
		return shift.AssignmentResponse{}, shift.ErrForbidden
	}

	setting, err := s.settingRepo.GetByID(ctx, req.SettingID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	effectiveFrom := s.clock.Now()
	if req.EffectiveFrom != nil && *req.EffectiveFrom != "" {
		if parsed, ok := validator.IsValidDate(*req.EffectiveFrom); ok {
			effectiveFrom = parsed
		}
	}

	assignment, err := s.assignmentRepo.Assign(ctx, emp.ID, setting.ID, effectiveFrom)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	s.notifyScheduleChange(ctx, companyID, userID, emp, setting.Name)

	return toAssignmentResponse(assignment), nil
}

// UpdateSchedule implements shift.Service.
func (s *ShiftServiceImpl) UpdateSchedule(ctx context.Context, req shift.UpdateScheduleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, userID, err := companyClaims(ctx)
	if err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if emp.CompanyID != companyID {
		return shift.ErrForbidden
	}

	// Reuse an active setting with this name, create one when the name is
	// new.
	setting, err := s.settingRepo.GetActiveByName(ctx, req.ShiftType)
	if err != nil {
		return err
	}
	if setting == nil {
		created, err := s.settingRepo.Create(ctx, shift.ShiftSetting{
			Name:     req.ShiftType,
			Type:     shift.SettingTypeForName(req.ShiftType),
			IsActive: true,
			Times:    timesFromSchedules(req.Schedules),
		})
		if err != nil {
			return err
		}
		setting = &created
	}

	if _, err := s.assignmentRepo.Assign(ctx, emp.ID, setting.ID, s.clock.Now()); err != nil {
		return err
	}

	s.notifyScheduleChange(ctx, companyID, userID, emp, setting.Name)

	return nil
}

// RemoveSchedule implements shift.Service.
func (s *ShiftServiceImpl) RemoveSchedule(ctx context.Context, employeeID string) error {
	companyID, _, err := companyClaims(ctx)
	if err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.CompanyID != companyID {
		return shift.ErrForbidden
	}

	return s.assignmentRepo.CloseActive(ctx, emp.ID, s.clock.Now())
}

// ListUnassigned implements shift.Service.
func (s *ShiftServiceImpl) ListUnassigned(ctx context.Context) ([]shift.UnassignedEmployeeResponse, error) {
	companyID, _, err := companyClaims(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.assignmentRepo.ListUnassigned(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]shift.UnassignedEmployeeResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, shift.UnassignedEmployeeResponse{
			EmployeeID: row.EmployeeID,
			Name:       row.EmployeeName,
			Position:   strValue(row.Jobdesk),
			Branch:     strValue(row.Branch),
		})
	}

	return out, nil
}

// notifyScheduleChange tells the affected employee's user. A failed
// notification never fails the assignment.
func (s *ShiftServiceImpl) notifyScheduleChange(ctx context.Context, companyID, adminUserID string, emp employee.Employee, shiftName string) {
	if s.notificationSvc == nil {
		return
	}

	recipient, err := s.userRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		slog.Error("Failed to get employee user for notification", "employee_id", emp.ID, "error", err)
		return
	}
	if recipient == nil {
		return
	}

	err = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: recipient.ID,
		SenderID:    &adminUserID,
		Type:        notification.TypeScheduleUpdated,
		Title:       "Jadwal Kerja Diperbarui",
		Message:     fmt.Sprintf("Jadwal kerja Anda telah diubah menjadi %s.", shiftName),
		Data: map[string]interface{}{
			"employee_id": emp.ID,
			"shift_name":  shiftName,
			"company_id":  companyID,
		},
	})
	if err != nil {
		slog.Error("Failed to queue schedule notification", "recipient_id", recipient.ID, "error", err)
	}
}

func timesFromSchedules(schedules map[string]shift.DaySchedule) []shift.DayTime {
	times := make([]shift.DayTime, 0, len(schedules))
	for dayName, day := range schedules {
		dayNum, ok := shift.DayNumber(strings.ToLower(dayName))
		if !ok {
			continue
		}

		dt := shift.DayTime{Day: dayNum}
		if !day.IsOff {
			if day.Start != nil {
				if minutes, ok := validator.IsValidTimeOfDay(*day.Start); ok {
					dt.ClockInMinutes = &minutes
				}
			}
			if day.End != nil {
				if minutes, ok := validator.IsValidTimeOfDay(*day.End); ok {
					dt.ClockOutMinutes = &minutes
				}
			}
		}
		times = append(times, dt)
	}
	return times
}

func toShiftTypeResponse(setting shift.ShiftSetting) shift.ShiftTypeResponse {
	times := make([]shift.DayTimeResponse, 0, len(setting.Times))
	for _, dt := range setting.Times {
		times = append(times, shift.DayTimeResponse{
			Day:        dt.Day,
			ClockIn:    shift.MinutesToTime(dt.ClockInMinutes),
			ClockOut:   shift.MinutesToTime(dt.ClockOutMinutes),
			BreakStart: shift.MinutesToTime(dt.BreakStartMinutes),
			BreakEnd:   shift.MinutesToTime(dt.BreakEndMinutes),
		})
	}

	return shift.ShiftTypeResponse{
		ID:    setting.ID,
		Name:  setting.Name,
		Type:  setting.Type,
		Times: times,
	}
}

func toAssignmentResponse(a shift.ShiftAssignment) shift.AssignmentResponse {
	resp := shift.AssignmentResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		SettingID:     a.ShiftSettingID,
		EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
	}
	if a.EffectiveTo != nil {
		to := a.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}

func strValue(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

// ScheduleResolver answers clock-in times from the effective assignment.
type ScheduleResolver struct {
	assignmentRepo shift.AssignmentRepository
}

func NewScheduleResolver(assignmentRepo shift.AssignmentRepository) shift.Resolver {
	return &ScheduleResolver{assignmentRepo: assignmentRepo}
}

// ScheduledClockInMinutes implements shift.Resolver.
func (r *ScheduleResolver) ScheduledClockInMinutes(ctx context.Context, employeeID string, onDate time.Time) (*int, error) {
	dt, err := r.assignmentRepo.GetEffectiveDayTime(ctx, employeeID, onDate)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, nil
	}
	return dt.ClockInMinutes, nil
}
