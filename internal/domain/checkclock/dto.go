package checkclock

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-CLOCK DTOs
// ========================================

type SubmitRequest struct {
	Type         string   `json:"type"`
	LocationName *string  `json:"location_name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"` // YYYY-MM-DD, leave only
	EndDate      *string  `json:"end_date,omitempty"`   // YYYY-MM-DD, leave only

	ProofURL   *string               `json:"-"`
	ProofName  *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	normalized := strings.ToUpper(r.Type)
	if !validator.IsInSlice(normalized, AllowedTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: CLOCK_IN, CLOCK_OUT, ABSENT, ANNUAL_LEAVE, SICK_LEAVE",
		})
	} else {
		r.Type = normalized
	}

	if normalized == string(TypeAnnualLeave) || normalized == string(TypeSickLeave) {
		errs = append(errs, validateLeaveRange(r.StartDate, r.EndDate)...)
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.FileHeader != nil {
		errs = append(errs, validateProofFile(r.FileHeader)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdminSubmitRequest struct {
	EmployeeID string `json:"employee_id"`
	SubmitRequest
}

func (r *AdminSubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if err := r.SubmitRequest.Validate(); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, verrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateLeaveRange(startDate, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	var start, end time.Time
	var startOK, endOK bool

	if startDate == nil || validator.IsEmpty(*startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required for leave requests",
		})
	} else if start, startOK = validator.IsValidDate(*startDate); !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if endDate == nil || validator.IsEmpty(*endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required for leave requests",
		})
	} else if end, endOK = validator.IsValidDate(*endDate); !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}

func validateProofFile(header *multipart.FileHeader) validator.ValidationErrors {
	var errs validator.ValidationErrors

	filename := header.Filename
	dot := strings.LastIndex(filename, ".")
	ext := ""
	if dot >= 0 {
		ext = strings.ToLower(filename[dot:])
	}

	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		errs = append(errs, validator.ValidationError{
			Field:   "proof",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if header.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "proof",
			Message: "proof photo size must not exceed 10MB",
		})
	}

	return errs
}

// DecideRequest approves or rejects a pending record.
type DecideRequest struct {
	ID       string `json:"-"`
	Approved bool   `json:"approved"`
}

// MyCheckClockResponse is the employee-facing listing row.
type MyCheckClockResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Date      *string `json:"date"`
	ClockIn   *string `json:"clock_in"`
	ClockOut  *string `json:"clock_out"`
	WorkHours *string `json:"work_hours"`
	Approval  string  `json:"approval"`
}

// CheckClockResponse is the admin-facing row with employee info and
// location/proof metadata.
type CheckClockResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Jobdesk      string `json:"jobdesk"`

	AttendanceType string `json:"attendance_type"`

	Date     *string `json:"date,omitempty"`
	ClockIn  string  `json:"clock_in"`
	ClockOut string  `json:"clock_out"`

	WorkMinutes *int   `json:"work_minutes"`
	WorkHours   string `json:"work_hours"`

	Status        string `json:"status"`
	Approval      string `json:"approval"`
	CreatedByRole string `json:"created_by_role"`
	CanClockOut   bool   `json:"can_clock_out"`

	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	LocationName *string  `json:"location_name"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`

	Notes *string `json:"notes"`

	ProofURL          *string `json:"proof_url"`
	ProofName         *string `json:"proof_name"`
	ClockOutProofURL  *string `json:"clock_out_proof_url"`
	ClockOutProofName *string `json:"clock_out_proof_name"`
}
