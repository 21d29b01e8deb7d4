package http

import (
	"encoding/json"
	"net/http"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/overtime"
	"github.com/developnetgeometry/unity-hrms-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	OTClockIn(w http.ResponseWriter, r *http.Request)
	OTClockOut(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// OTClockIn implements OvertimeHandler.
func (h *overtimeHandlerImpl) OTClockIn(w http.ResponseWriter, r *http.Request) {
	var req overtime.OTClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.OTClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime session started", result)
}

// OTClockOut implements OvertimeHandler.
func (h *overtimeHandlerImpl) OTClockOut(w http.ResponseWriter, r *http.Request) {
	var req overtime.OTClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.OTClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime session completed", result)
}

// Approve implements OvertimeHandler.
func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req := overtime.ApproveSessionRequest{
		ID: chi.URLParam(r, "id"),
	}
	if req.ID == "" {
		response.BadRequest(w, "Overtime session ID is required", nil)
		return
	}

	result, err := h.overtimeService.ApproveSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime session approved", result)
}
