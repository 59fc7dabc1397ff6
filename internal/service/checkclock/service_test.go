package checkclock

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============= Test fakes =============

type fakeCheckClockRepo struct {
	records     []checkclock.CheckClock
	openSession *checkclock.CheckClock

	createdRecord *checkclock.CheckClock
	closedID      string
	closedParams  checkclock.CloseSessionParams
	approvalID    string
	approval      checkclock.Approval
	approvedBy    string
	autoCutoff    *time.Time
}

func (f *fakeCheckClockRepo) Create(ctx context.Context, record checkclock.CheckClock) (checkclock.CheckClock, error) {
	if record.Type == checkclock.TypeClockIn && f.openSession != nil {
		return checkclock.CheckClock{}, checkclock.ErrAlreadyClockedIn
	}
	record.ID = "cc-new"
	f.createdRecord = &record
	return record, nil
}

func (f *fakeCheckClockRepo) GetByID(ctx context.Context, id, companyID string) (checkclock.CheckClock, error) {
	for _, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return checkclock.CheckClock{}, checkclock.ErrCheckClockNotFound
}

func (f *fakeCheckClockRepo) GetOpenSession(ctx context.Context, employeeID string) (*checkclock.CheckClock, error) {
	if f.openSession != nil && f.openSession.EmployeeID == employeeID {
		return f.openSession, nil
	}
	return nil, nil
}

func (f *fakeCheckClockRepo) CloseSession(ctx context.Context, id string, params checkclock.CloseSessionParams) (checkclock.CheckClock, error) {
	f.closedID = id
	f.closedParams = params

	closed := *f.openSession
	closed.ClockOutTime = &params.ClockOutTime
	if params.ApprovedBy != nil {
		closed.ApprovedBy = params.ApprovedBy
		closed.ApprovedAt = params.ApprovedAt
	}
	return closed, nil
}

func (f *fakeCheckClockRepo) ListByEmployee(ctx context.Context, employeeID string) ([]checkclock.CheckClock, error) {
	return f.records, nil
}

func (f *fakeCheckClockRepo) ListByCompany(ctx context.Context, companyID string) ([]checkclock.CheckClock, error) {
	return f.records, nil
}

func (f *fakeCheckClockRepo) UpdateApproval(ctx context.Context, id string, approval checkclock.Approval, approvedBy string, approvedAt time.Time) (checkclock.CheckClock, error) {
	f.approvalID = id
	f.approval = approval
	f.approvedBy = approvedBy

	updated, err := f.GetByID(ctx, id, "company-1")
	if err != nil {
		return checkclock.CheckClock{}, err
	}
	updated.Approval = approval
	updated.ApprovedBy = &approvedBy
	updated.ApprovedAt = &approvedAt
	return updated, nil
}

func (f *fakeCheckClockRepo) AutoClockOut(ctx context.Context, cutoff time.Time) (int64, error) {
	f.autoCutoff = &cutoff
	return 2, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return user.User{ID: id}, nil
}

func (f *fakeUserRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*user.User, error) {
	return &user.User{ID: "user-" + employeeID}, nil
}

func (f *fakeUserRepo) GetAdminsByCompanyID(ctx context.Context, companyID string) ([]user.User, error) {
	return []user.User{{ID: "admin-1", Role: user.RoleAdmin}}, nil
}

type fakeResolver struct {
	minutes *int
}

func (f *fakeResolver) ScheduledClockInMinutes(ctx context.Context, employeeID string, onDate time.Time) (*int, error) {
	return f.minutes, nil
}

// ============= Helpers =============

var jakarta = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func authContext(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func employeeContext(t *testing.T) context.Context {
	return authContext(t, map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"company_id":  "company-1",
		"role":        "user",
		"type":        "access",
	})
}

func adminContext(t *testing.T) context.Context {
	return authContext(t, map[string]interface{}{
		"user_id":    "admin-1",
		"company_id": "company-1",
		"role":       "admin",
		"type":       "access",
	})
}

func newTestService(repo *fakeCheckClockRepo, resolver *fakeResolver, now time.Time) checkclock.Service {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "company-1", FirstName: "Budi", LastName: strPtr("Santoso")},
		"emp-2": {ID: "emp-2", CompanyID: "company-2", FirstName: "Siti"},
	}}

	return NewCheckClockService(
		repo,
		employees,
		&fakeUserRepo{},
		resolver,
		nil, // notifications skipped in unit tests
		nil, // no file uploads in unit tests
		clock.Fixed(now),
		480,  // 08:00
		1290, // 21:30
	)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// ============= Submit =============

func TestSubmit_ClockIn_OnTime(t *testing.T) {
	now := time.Date(2025, 6, 2, 7, 55, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{minutes: intPtr(480)}, now)

	result, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_IN"})
	require.NoError(t, err)

	require.NotNil(t, repo.createdRecord)
	assert.Equal(t, checkclock.TypeClockIn, repo.createdRecord.Type)
	assert.Equal(t, checkclock.ApprovalPending, repo.createdRecord.Approval)
	require.NotNil(t, repo.createdRecord.Status)
	assert.Equal(t, checkclock.StatusOnTime, *repo.createdRecord.Status)
	assert.Equal(t, now, *repo.createdRecord.Time)

	assert.Equal(t, "On Time", result.Status)
	assert.Equal(t, "Budi Santoso", result.EmployeeName)
	assert.True(t, result.CanClockOut)
}

func TestSubmit_ClockIn_LateAgainstDefaultSchedule(t *testing.T) {
	// No assignment: resolver returns nil, company default 08:00 applies
	now := time.Date(2025, 6, 2, 8, 15, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{minutes: nil}, now)

	result, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_IN"})
	require.NoError(t, err)

	require.NotNil(t, repo.createdRecord.Status)
	assert.Equal(t, checkclock.StatusLate, *repo.createdRecord.Status)
	assert.Equal(t, "Late", result.Status)
}

func TestSubmit_ClockIn_ExactlyOnScheduledMinute(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{minutes: intPtr(540)}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_IN"})
	require.NoError(t, err)

	assert.Equal(t, checkclock.StatusOnTime, *repo.createdRecord.Status)
}

func TestSubmit_DoubleClockIn(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, jakarta)
	open := time.Date(2025, 6, 2, 7, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{
		openSession: &checkclock.CheckClock{
			ID: "cc-open", EmployeeID: "emp-1", CompanyID: "company-1",
			Type: checkclock.TypeClockIn, Time: &open,
		},
	}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_IN"})
	assert.ErrorIs(t, err, checkclock.ErrAlreadyClockedIn)
}

func TestSubmit_ClockOut_ClosesOpenSession(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 8, 0, 0, 0, jakarta)
	now := time.Date(2025, 6, 2, 17, 2, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{
		openSession: &checkclock.CheckClock{
			ID: "cc-open", EmployeeID: "emp-1", CompanyID: "company-1",
			Type: checkclock.TypeClockIn, Time: &clockIn,
			Approval: checkclock.ApprovalPending,
		},
	}
	svc := newTestService(repo, &fakeResolver{}, now)

	result, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_OUT"})
	require.NoError(t, err)

	assert.Equal(t, "cc-open", repo.closedID)
	assert.Equal(t, now, repo.closedParams.ClockOutTime)
	assert.Nil(t, repo.closedParams.ApprovedBy)

	require.NotNil(t, result.WorkMinutes)
	assert.Equal(t, 542, *result.WorkMinutes)
	assert.Equal(t, "9 jam 2 menit", result.WorkHours)
	assert.False(t, result.CanClockOut)
}

func TestSubmit_ClockOut_NoActiveSession(t *testing.T) {
	now := time.Date(2025, 6, 2, 17, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_OUT"})
	assert.ErrorIs(t, err, checkclock.ErrNoActiveClockIn)
}

func TestSubmit_Absent_CoversWholeDay(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 30, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "ABSENT"})
	require.NoError(t, err)

	require.NotNil(t, repo.createdRecord.StartDate)
	require.NotNil(t, repo.createdRecord.EndDate)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, jakarta), *repo.createdRecord.StartDate)
	assert.Equal(t, 23, repo.createdRecord.EndDate.Hour())
	assert.Nil(t, repo.createdRecord.Time)
	assert.Nil(t, repo.createdRecord.Status)
}

func TestSubmit_AnnualLeave_UsesRequestedRange(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{
		Type:      "ANNUAL_LEAVE",
		StartDate: strPtr("2025-06-10"),
		EndDate:   strPtr("2025-06-12"),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, repo.createdRecord.StartDate.Day())
	assert.Equal(t, 12, repo.createdRecord.EndDate.Day())
	assert.Equal(t, checkclock.ApprovalPending, repo.createdRecord.Approval)
}

func TestSubmit_LeaveWithoutDates_FailsValidation(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, jakarta)
	svc := newTestService(&fakeCheckClockRepo{}, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "SICK_LEAVE"})
	require.Error(t, err)
}

func TestSubmit_MissingLocationDefaultsToNA(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.Submit(employeeContext(t), checkclock.SubmitRequest{Type: "CLOCK_IN"})
	require.NoError(t, err)

	assert.Equal(t, "N/A", *repo.createdRecord.LocationName)
	assert.Equal(t, "N/A", *repo.createdRecord.Address)
}

// ============= AdminSubmit =============

func TestAdminSubmit_AutoApproves(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 30, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{minutes: intPtr(480)}, now)

	_, err := svc.AdminSubmit(adminContext(t), checkclock.AdminSubmitRequest{
		EmployeeID:    "emp-1",
		SubmitRequest: checkclock.SubmitRequest{Type: "CLOCK_IN"},
	})
	require.NoError(t, err)

	assert.Equal(t, checkclock.ApprovalApproved, repo.createdRecord.Approval)
	require.NotNil(t, repo.createdRecord.ApprovedBy)
	assert.Equal(t, "admin-1", *repo.createdRecord.ApprovedBy)
	assert.NotNil(t, repo.createdRecord.ApprovedAt)
	// Late: 08:30 against 08:00
	assert.Equal(t, checkclock.StatusLate, *repo.createdRecord.Status)
}

func TestAdminSubmit_OtherCompanyEmployee(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, jakarta)
	svc := newTestService(&fakeCheckClockRepo{}, &fakeResolver{}, now)

	_, err := svc.AdminSubmit(adminContext(t), checkclock.AdminSubmitRequest{
		EmployeeID:    "emp-2",
		SubmitRequest: checkclock.SubmitRequest{Type: "CLOCK_IN"},
	})
	assert.ErrorIs(t, err, checkclock.ErrForbidden)
}

func TestAdminSubmit_ClockOut_StampsApprover(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 8, 0, 0, 0, jakarta)
	now := time.Date(2025, 6, 2, 17, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{
		openSession: &checkclock.CheckClock{
			ID: "cc-open", EmployeeID: "emp-1", CompanyID: "company-1",
			Type: checkclock.TypeClockIn, Time: &clockIn,
		},
	}
	svc := newTestService(repo, &fakeResolver{}, now)

	_, err := svc.AdminSubmit(adminContext(t), checkclock.AdminSubmitRequest{
		EmployeeID:    "emp-1",
		SubmitRequest: checkclock.SubmitRequest{Type: "CLOCK_OUT"},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.closedParams.ApprovedBy)
	assert.Equal(t, "admin-1", *repo.closedParams.ApprovedBy)
	assert.NotNil(t, repo.closedParams.ApprovedAt)
}

// ============= Decide =============

func TestDecide_Approve(t *testing.T) {
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, jakarta)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{
		records: []checkclock.CheckClock{{
			ID: "cc-1", EmployeeID: "emp-1", CompanyID: "company-1",
			Type: checkclock.TypeAnnualLeave, StartDate: &start, EndDate: &start,
			Approval: checkclock.ApprovalPending,
		}},
	}
	svc := newTestService(repo, &fakeResolver{}, now)

	result, err := svc.Decide(adminContext(t), checkclock.DecideRequest{ID: "cc-1", Approved: true})
	require.NoError(t, err)

	assert.Equal(t, "cc-1", repo.approvalID)
	assert.Equal(t, checkclock.ApprovalApproved, repo.approval)
	assert.Equal(t, "admin-1", repo.approvedBy)
	assert.Equal(t, string(checkclock.ApprovalApproved), result.Approval)
	assert.Equal(t, "Annual Leave", result.Status)
}

func TestDecide_Reject(t *testing.T) {
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, jakarta)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{
		records: []checkclock.CheckClock{{
			ID: "cc-1", EmployeeID: "emp-1", CompanyID: "company-1",
			Type: checkclock.TypeSickLeave, StartDate: &start, EndDate: &start,
			Approval: checkclock.ApprovalPending,
		}},
	}
	svc := newTestService(repo, &fakeResolver{}, now)

	result, err := svc.Decide(adminContext(t), checkclock.DecideRequest{ID: "cc-1", Approved: false})
	require.NoError(t, err)

	assert.Equal(t, checkclock.ApprovalRejected, repo.approval)
	assert.Equal(t, "Pending", result.Status)
}

func TestDecide_NotFound(t *testing.T) {
	now := time.Date(2025, 6, 3, 10, 0, 0, 0, jakarta)
	svc := newTestService(&fakeCheckClockRepo{}, &fakeResolver{}, now)

	_, err := svc.Decide(adminContext(t), checkclock.DecideRequest{ID: "missing", Approved: true})
	assert.ErrorIs(t, err, checkclock.ErrCheckClockNotFound)
}

// ============= AutoClockOut =============

func TestAutoClockOut_NoOpBeforeCutoff(t *testing.T) {
	now := time.Date(2025, 6, 2, 21, 0, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	closed, err := svc.AutoClockOut(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), closed)
	assert.Nil(t, repo.autoCutoff)
}

func TestAutoClockOut_SweepsAfterCutoff(t *testing.T) {
	now := time.Date(2025, 6, 2, 21, 45, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	closed, err := svc.AutoClockOut(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), closed)
	require.NotNil(t, repo.autoCutoff)
	assert.Equal(t, time.Date(2025, 6, 2, 21, 30, 0, 0, jakarta), *repo.autoCutoff)
}

func TestAutoClockOut_ExactlyAtCutoff(t *testing.T) {
	now := time.Date(2025, 6, 2, 21, 30, 0, 0, jakarta)
	repo := &fakeCheckClockRepo{}
	svc := newTestService(repo, &fakeResolver{}, now)

	closed, err := svc.AutoClockOut(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), closed)
}
