package http

import (
	"encoding/json"
	"net/http"

	"github.com/developnetgeometry/unity-hrms-go/internal/domain/attendance"
	"github.com/developnetgeometry/unity-hrms-go/internal/domain/summary"
	"github.com/developnetgeometry/unity-hrms-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	MyStatus(w http.ResponseWriter, r *http.Request)
	TodaySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	summaryService    summary.SummaryService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, summaryService summary.SummaryService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		summaryService:    summaryService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// MyStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.MyStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TodaySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) TodaySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaryService.TodaySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
