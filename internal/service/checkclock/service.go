package checkclock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type CheckClockServiceImpl struct {
	repo            checkclock.Repository
	employeeRepo    employee.Repository
	userRepo        user.Repository
	resolver        shift.Resolver
	notificationSvc notification.Service
	fileService     file.FileService
	clock           clock.Clock

	defaultClockInMinutes int
	autoClockOutMinutes   int
}

func NewCheckClockService(
	repo checkclock.Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	resolver shift.Resolver,
	notificationSvc notification.Service,
	fileService file.FileService,
	clk clock.Clock,
	defaultClockInMinutes int,
	autoClockOutMinutes int,
) checkclock.Service {
	return &CheckClockServiceImpl{
		repo:                  repo,
		employeeRepo:          employeeRepo,
		userRepo:              userRepo,
		resolver:              resolver,
		notificationSvc:       notificationSvc,
		fileService:           fileService,
		clock:                 clk,
		defaultClockInMinutes: defaultClockInMinutes,
		autoClockOutMinutes:   autoClockOutMinutes,
	}
}

var typeLabels = map[checkclock.Type]string{
	checkclock.TypeClockIn:     "Clock In",
	checkclock.TypeClockOut:    "Clock Out",
	checkclock.TypeAbsent:      "Absent",
	checkclock.TypeAnnualLeave: "Annual Leave",
	checkclock.TypeSickLeave:   "Sick Leave",
}

func employeeClaims(ctx context.Context) (companyID, employeeID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, employeeID, userID, nil
}

func adminClaims(ctx context.Context) (companyID, userID string, err error) {
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

// Submit implements checkclock.Service.
func (s *CheckClockServiceImpl) Submit(ctx context.Context, req checkclock.SubmitRequest) (checkclock.CheckClockResponse, error) {
	if err := req.Validate(); err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	companyID, employeeID, userID, err := employeeClaims(ctx)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return checkclock.CheckClockResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.clock.Now()
	recordType := checkclock.Type(req.Type)

	if recordType == checkclock.TypeClockOut {
		closed, err := s.clockOut(ctx, employeeID, now, nil, nil, nil)
		if err != nil {
			return checkclock.CheckClockResponse{}, err
		}
		return s.toResponse(closed, emp), nil
	}

	record, err := s.buildRecord(ctx, emp, recordType, req, now)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}
	record.Approval = checkclock.ApprovalPending

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	s.notifyAdmins(ctx, companyID, userID, emp, created)

	return s.toResponse(created, emp), nil
}

// AdminSubmit implements checkclock.Service.
func (s *CheckClockServiceImpl) AdminSubmit(ctx context.Context, req checkclock.AdminSubmitRequest) (checkclock.CheckClockResponse, error) {
	if err := req.Validate(); err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	companyID, userID, err := adminClaims(ctx)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}
	if emp.CompanyID != companyID {
		return checkclock.CheckClockResponse{}, checkclock.ErrForbidden
	}

	now := s.clock.Now()
	recordType := checkclock.Type(req.Type)

	if recordType == checkclock.TypeClockOut {
		var proofURL, proofName *string
		if req.File != nil && req.FileHeader != nil {
			uploaded, err := s.fileService.UploadClockProof(ctx, emp.ID, now, req.File, req.FileHeader.Filename, "clock-out")
			if err != nil {
				return checkclock.CheckClockResponse{}, fmt.Errorf("failed to upload clock out proof: %w", err)
			}
			proofURL = &uploaded
			proofName = &req.FileHeader.Filename
		}

		closed, err := s.clockOut(ctx, emp.ID, now, &userID, proofURL, proofName)
		if err != nil {
			return checkclock.CheckClockResponse{}, err
		}
		return s.toResponse(closed, emp), nil
	}

	record, err := s.buildRecord(ctx, emp, recordType, req.SubmitRequest, now)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	// Admin entries skip the approval queue.
	record.Approval = checkclock.ApprovalApproved
	record.ApprovedBy = &userID
	record.ApprovedAt = &now

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	return s.toResponse(created, emp), nil
}

func (s *CheckClockServiceImpl) clockOut(ctx context.Context, employeeID string, now time.Time, approvedBy *string, proofURL, proofName *string) (checkclock.CheckClock, error) {
	open, err := s.repo.GetOpenSession(ctx, employeeID)
	if err != nil {
		return checkclock.CheckClock{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		return checkclock.CheckClock{}, checkclock.ErrNoActiveClockIn
	}

	params := checkclock.CloseSessionParams{
		ClockOutTime:      now,
		ApprovedBy:        approvedBy,
		ClockOutProofURL:  proofURL,
		ClockOutProofName: proofName,
	}
	if approvedBy != nil {
		params.ApprovedAt = &now
	}

	return s.repo.CloseSession(ctx, open.ID, params)
}

// buildRecord assembles the insert for CLOCK_IN, ABSENT and leave types.
func (s *CheckClockServiceImpl) buildRecord(ctx context.Context, emp employee.Employee, recordType checkclock.Type, req checkclock.SubmitRequest, now time.Time) (checkclock.CheckClock, error) {
	record := checkclock.CheckClock{
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		Type:       recordType,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
	}

	// Missing location metadata is recorded as "N/A", not null.
	record.LocationName = defaultNA(req.LocationName)
	record.Address = defaultNA(req.Address)

	switch recordType {
	case checkclock.TypeClockIn:
		scheduled, err := s.resolver.ScheduledClockInMinutes(ctx, emp.ID, now)
		if err != nil {
			return checkclock.CheckClock{}, fmt.Errorf("failed to resolve schedule: %w", err)
		}

		scheduledMinutes := s.defaultClockInMinutes
		if scheduled != nil {
			scheduledMinutes = *scheduled
		}

		status := checkclock.DetermineStatus(checkclock.MinutesOfDay(now), scheduledMinutes)
		record.Time = &now
		record.Status = &status

	case checkclock.TypeAbsent:
		start, end := checkclock.DayBounds(now)
		record.StartDate = &start
		record.EndDate = &end

	case checkclock.TypeAnnualLeave, checkclock.TypeSickLeave:
		start, _ := time.ParseInLocation("2006-01-02", *req.StartDate, now.Location())
		end, _ := time.ParseInLocation("2006-01-02", *req.EndDate, now.Location())
		record.StartDate = &start
		record.EndDate = &end

	default:
		return checkclock.CheckClock{}, checkclock.ErrInvalidType
	}

	if req.File != nil && req.FileHeader != nil {
		var uploaded string
		var err error
		if recordType == checkclock.TypeClockIn {
			uploaded, err = s.fileService.UploadClockProof(ctx, emp.ID, now, req.File, req.FileHeader.Filename, "clock-in")
		} else {
			uploaded, err = s.fileService.UploadLeaveEvidence(ctx, emp.ID, req.File, req.FileHeader.Filename)
		}
		if err != nil {
			return checkclock.CheckClock{}, fmt.Errorf("failed to upload proof: %w", err)
		}
		record.ProofURL = &uploaded
		record.ProofName = &req.FileHeader.Filename
	}

	return record, nil
}

func defaultNA(v *string) *string {
	if v == nil || *v == "" {
		na := "N/A"
		return &na
	}
	return v
}

// notifyAdmins queues a submission notification for every admin of the
// employee's company. Failures are logged and never fail the submission.
func (s *CheckClockServiceImpl) notifyAdmins(ctx context.Context, companyID string, senderUserID string, emp employee.Employee, created checkclock.CheckClock) {
	if s.notificationSvc == nil {
		return
	}

	admins, err := s.userRepo.GetAdminsByCompanyID(ctx, companyID)
	if err != nil {
		slog.Error("Failed to get admins for notification", "company_id", companyID, "error", err)
		return
	}

	label := typeLabels[created.Type]
	for _, admin := range admins {
		err := s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: admin.ID,
			SenderID:    &senderUserID,
			Type:        notification.TypeCheckClockSubmitted,
			Title:       "Pengajuan Absensi Baru",
			Message:     fmt.Sprintf("%s mengajukan %s dan menunggu persetujuan.", emp.FullName(), label),
			Data: map[string]interface{}{
				"checkclock_id": created.ID,
				"type":          string(created.Type),
				"employee_id":   emp.ID,
				"company_id":    companyID,
			},
		})
		if err != nil {
			slog.Error("Failed to queue admin notification", "recipient_id", admin.ID, "error", err)
		}
	}
}

// ListMine implements checkclock.Service.
func (s *CheckClockServiceImpl) ListMine(ctx context.Context) ([]checkclock.MyCheckClockResponse, error) {
	_, employeeID, _, err := employeeClaims(ctx)
	if err != nil {
		return nil, err
	}

	s.sweepBestEffort(ctx)

	records, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]checkclock.MyCheckClockResponse, 0, len(records))
	for _, r := range records {
		row := checkclock.MyCheckClockResponse{
			ID:       r.ID,
			Type:     string(r.Type),
			Approval: string(r.Approval),
		}

		// The record's display date: clock-in time for sessions, start
		// date for whole-day records.
		if r.Time != nil {
			row.Date = timePtrToString(r.Time)
		} else {
			row.Date = timePtrToString(r.StartDate)
		}

		if r.Type == checkclock.TypeClockIn {
			row.ClockIn = timePtrToString(r.Time)
			row.ClockOut = timePtrToString(r.ClockOutTime)

			if r.Time != nil && r.ClockOutTime != nil {
				wh := checkclock.FormatWorkHours(checkclock.WorkMinutes(*r.Time, *r.ClockOutTime))
				row.WorkHours = &wh
			}
		}

		out = append(out, row)
	}

	return out, nil
}

// ListCompany implements checkclock.Service.
func (s *CheckClockServiceImpl) ListCompany(ctx context.Context) ([]checkclock.CheckClockResponse, error) {
	companyID, _, err := adminClaims(ctx)
	if err != nil {
		return nil, err
	}

	s.sweepBestEffort(ctx)

	records, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]checkclock.CheckClockResponse, 0, len(records))
	for _, r := range records {
		out = append(out, mapRecord(r))
	}

	return out, nil
}

// Get implements checkclock.Service.
func (s *CheckClockServiceImpl) Get(ctx context.Context, id string) (checkclock.CheckClockResponse, error) {
	companyID, _, err := adminClaims(ctx)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, id, companyID)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	return mapRecord(record), nil
}

// Decide implements checkclock.Service.
func (s *CheckClockServiceImpl) Decide(ctx context.Context, req checkclock.DecideRequest) (checkclock.CheckClockResponse, error) {
	companyID, userID, err := adminClaims(ctx)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	record, err := s.repo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	approval := checkclock.ApprovalRejected
	if req.Approved {
		approval = checkclock.ApprovalApproved
	}

	now := s.clock.Now()
	updated, err := s.repo.UpdateApproval(ctx, record.ID, approval, userID, now)
	if err != nil {
		return checkclock.CheckClockResponse{}, err
	}

	s.notifyDecision(ctx, companyID, userID, record, req.Approved)

	updated.EmployeeName = record.EmployeeName
	updated.EmployeeJobdesk = record.EmployeeJobdesk
	return mapRecord(updated), nil
}

// notifyDecision tells the employee's user about the outcome. A failed
// notification never fails the decision.
func (s *CheckClockServiceImpl) notifyDecision(ctx context.Context, companyID, adminUserID string, record checkclock.CheckClock, approved bool) {
	if s.notificationSvc == nil {
		return
	}

	recipient, err := s.userRepo.GetByEmployeeID(ctx, record.EmployeeID)
	if err != nil {
		slog.Error("Failed to get employee user for notification", "employee_id", record.EmployeeID, "error", err)
		return
	}
	if recipient == nil {
		return
	}

	label := typeLabels[record.Type]

	notifType := notification.TypeCheckClockRejected
	title := "Absensi Ditolak"
	message := fmt.Sprintf("Permintaan %s Anda telah ditolak oleh Admin.", label)
	if approved {
		notifType = notification.TypeCheckClockApproved
		title = "Absensi Disetujui"
		message = fmt.Sprintf("Permintaan %s Anda telah disetujui oleh Admin.", label)
	}

	err = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   companyID,
		RecipientID: recipient.ID,
		SenderID:    &adminUserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"checkclock_id": record.ID,
			"type":          string(record.Type),
			"employee_id":   record.EmployeeID,
			"company_id":    companyID,
		},
	})
	if err != nil {
		slog.Error("Failed to queue decision notification", "recipient_id", recipient.ID, "error", err)
	}
}

// AutoClockOut implements checkclock.Service.
func (s *CheckClockServiceImpl) AutoClockOut(ctx context.Context) (int64, error) {
	now := s.clock.Now()

	if checkclock.MinutesOfDay(now) < s.autoClockOutMinutes {
		return 0, nil
	}

	year, month, day := now.Date()
	cutoff := time.Date(year, month, day, s.autoClockOutMinutes/60, s.autoClockOutMinutes%60, 0, 0, now.Location())

	return s.repo.AutoClockOut(ctx, cutoff)
}

// sweepBestEffort runs the auto clock-out before reads. Errors are logged
// and the read proceeds over unswept data.
func (s *CheckClockServiceImpl) sweepBestEffort(ctx context.Context) {
	if _, err := s.AutoClockOut(ctx); err != nil {
		slog.Error("Auto clock-out sweep failed", "error", err)
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

// toResponse maps a freshly written record using the employee loaded for
// the mutation.
func (s *CheckClockServiceImpl) toResponse(record checkclock.CheckClock, emp employee.Employee) checkclock.CheckClockResponse {
	name := emp.FullName()
	record.EmployeeName = &name
	record.EmployeeJobdesk = emp.Jobdesk
	return mapRecord(record)
}

// mapRecord renders a record the way the attendance table shows it.
func mapRecord(r checkclock.CheckClock) checkclock.CheckClockResponse {
	isLeave := r.IsLeave()

	resp := checkclock.CheckClockResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		AttendanceType: string(r.Type),
		Approval:       string(r.Approval),
		Status:         "-",
		ClockIn:        "-",
		ClockOut:       "-",
		WorkHours:      "-",
		StartDate:      timePtrToString(r.StartDate),
		EndDate:        timePtrToString(r.EndDate),
		LocationName:   r.LocationName,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Notes:          r.Notes,

		ProofURL:          r.ProofURL,
		ProofName:         r.ProofName,
		ClockOutProofURL:  r.ClockOutProofURL,
		ClockOutProofName: r.ClockOutProofName,
	}

	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	} else {
		resp.EmployeeName = "Unknown"
	}
	if r.EmployeeJobdesk != nil {
		resp.Jobdesk = *r.EmployeeJobdesk
	} else {
		resp.Jobdesk = "-"
	}

	if r.Time != nil {
		resp.Date = timePtrToString(r.Time)
	} else {
		resp.Date = timePtrToString(r.StartDate)
	}

	if r.Type == checkclock.TypeClockIn {
		resp.ClockIn = formatClock(r.Time)
		resp.ClockOut = formatClock(r.ClockOutTime)
		resp.CanClockOut = r.ClockOutTime == nil

		if r.Status != nil {
			switch *r.Status {
			case checkclock.StatusLate:
				resp.Status = "Late"
			case checkclock.StatusOnTime:
				resp.Status = "On Time"
			}
		}

		if r.Time != nil && r.ClockOutTime != nil {
			minutes := checkclock.WorkMinutes(*r.Time, *r.ClockOutTime)
			resp.WorkMinutes = &minutes
			resp.WorkHours = checkclock.FormatWorkHours(minutes)
		}
	} else if isLeave {
		if r.Approval == checkclock.ApprovalApproved {
			resp.Status = typeLabels[r.Type]
		} else {
			resp.Status = "Pending"
		}
	}

	if r.ApprovedBy != nil {
		resp.CreatedByRole = "admin"
	} else {
		resp.CreatedByRole = "user"
	}

	return resp
}
