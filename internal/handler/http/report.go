package http

import (
	"net/http"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	WorkHours(w http.ResponseWriter, r *http.Request)
	LeaveSummary(w http.ResponseWriter, r *http.Request)

	CompanyStats(w http.ResponseWriter, r *http.Request)
	RecentAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func monthParam(r *http.Request) string {
	return r.URL.Query().Get("month")
}

// Summary implements ReportHandler.
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.AttendanceSummary(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WorkHours implements ReportHandler.
func (h *reportHandlerImpl) WorkHours(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = report.ViewWeek
	}

	result, err := h.reportService.WorkHours(r.Context(), monthParam(r), view)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeaveSummary implements ReportHandler.
func (h *reportHandlerImpl) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.LeaveSummary(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CompanyStats implements ReportHandler.
func (h *reportHandlerImpl) CompanyStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.CompanyStats(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecentAttendance implements ReportHandler.
func (h *reportHandlerImpl) RecentAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.RecentAttendance(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
