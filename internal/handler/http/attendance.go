package http

import (
	"net/http"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/handler/http/response"
)

const rangeDateLayout = "2006-01-02"

type AttendanceHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	Range(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Overview implements AttendanceHandler.
func (h *attendanceHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	period, err := attendance.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Overview(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Range implements AttendanceHandler.
func (h *attendanceHandlerImpl) Range(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(rangeDateLayout, r.URL.Query().Get("start"))
	if err != nil {
		response.BadRequest(w, "Invalid start date, expected YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse(rangeDateLayout, r.URL.Query().Get("end"))
	if err != nil {
		response.BadRequest(w, "Invalid end date, expected YYYY-MM-DD", nil)
		return
	}

	result, err := h.attendanceService.Range(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	period, err := attendance.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Summary(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Refresh implements AttendanceHandler.
func (h *attendanceHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Refresh(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance snapshot refreshed", result)
}
