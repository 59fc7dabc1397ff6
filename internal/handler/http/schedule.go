package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListShiftTypes(w http.ResponseWriter, r *http.Request)
	CreateShiftType(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	ListUnassigned(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	shiftService shift.Service
}

func NewScheduleHandler(shiftService shift.Service) ScheduleHandler {
	return &scheduleHandlerImpl{
		shiftService: shiftService,
	}
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter shift.ListSchedulesFilter

	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil {
			filter.Page = page
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err := strconv.Atoi(l); err == nil {
			filter.Limit = limit
		}
	}

	result, err := h.shiftService.ListSchedules(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Schedules, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListShiftTypes implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShiftTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateShiftType implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.CreateShiftType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift type created", result)
}

// Assign implements ScheduleHandler.
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req shift.AssignScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule assigned", result)
}

// Update implements ScheduleHandler.
func (h *scheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req shift.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := h.shiftService.UpdateSchedule(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule updated", nil)
}

// Remove implements ScheduleHandler.
func (h *scheduleHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.shiftService.RemoveSchedule(r.Context(), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule removed", nil)
}

// ListUnassigned implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListUnassigned(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
