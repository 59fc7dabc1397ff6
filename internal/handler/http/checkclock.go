package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/domain/checkclock"
	"github.com/cmlabs-hris/checkclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CheckClockHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)

	AdminSubmit(w http.ResponseWriter, r *http.Request)
	AdminList(w http.ResponseWriter, r *http.Request)
	AdminGet(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type checkClockHandlerImpl struct {
	checkClockService checkclock.Service
}

func NewCheckClockHandler(checkClockService checkclock.Service) CheckClockHandler {
	return &checkClockHandlerImpl{
		checkClockService: checkClockService,
	}
}

// parseSubmitForm reads the multipart `data` JSON field and the optional
// `proof` file into req. Plain JSON bodies are accepted for submissions
// without a proof photo.
func parseSubmitForm(r *http.Request, req interface{}) (func(), error) {
	cleanup := func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return cleanup, err
		}
		return cleanup, nil
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return cleanup, err
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		return cleanup, errors.New("field 'data' is required")
	}

	if err := json.Unmarshal([]byte(dataJSON), req); err != nil {
		return cleanup, err
	}

	file, fileHeader, err := r.FormFile("proof")
	if err != nil {
		if err == http.ErrMissingFile {
			return cleanup, nil
		}
		return cleanup, err
	}

	cleanup = func() { _ = file.Close() }

	switch v := req.(type) {
	case *checkclock.SubmitRequest:
		v.File = file
		v.FileHeader = fileHeader
	case *checkclock.AdminSubmitRequest:
		v.File = file
		v.FileHeader = fileHeader
	}

	return cleanup, nil
}

// Submit implements CheckClockHandler.
func (h *checkClockHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkclock.SubmitRequest

	cleanup, err := parseSubmitForm(r, &req)
	defer cleanup()
	if err != nil {
		slog.Error("Failed to parse check clock submission", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkClockService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check clock submitted", result)
}

// ListMine implements CheckClockHandler.
func (h *checkClockHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkClockService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdminSubmit implements CheckClockHandler.
func (h *checkClockHandlerImpl) AdminSubmit(w http.ResponseWriter, r *http.Request) {
	var req checkclock.AdminSubmitRequest

	cleanup, err := parseSubmitForm(r, &req)
	defer cleanup()
	if err != nil {
		slog.Error("Failed to parse admin check clock submission", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkClockService.AdminSubmit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check clock recorded", result)
}

// AdminList implements CheckClockHandler.
func (h *checkClockHandlerImpl) AdminList(w http.ResponseWriter, r *http.Request) {
	result, err := h.checkClockService.ListCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdminGet implements CheckClockHandler.
func (h *checkClockHandlerImpl) AdminGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Check clock ID is required", nil)
		return
	}

	result, err := h.checkClockService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements CheckClockHandler.
func (h *checkClockHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Check clock ID is required", nil)
		return
	}

	var req checkclock.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.checkClockService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Check clock rejected"
	if req.Approved {
		message = "Check clock approved"
	}

	response.SuccessWithMessage(w, message, result)
}
