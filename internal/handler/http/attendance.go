package http

import (
	"encoding/json"
	"net/http"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	RecordAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// RecordAttendance handles PUT /attendance/{role}
func (h *attendanceHandlerImpl) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	role, valid := attendance.ParseRole(chi.URLParam(r, "role"))
	if !valid {
		response.HandleError(w, attendance.ErrInvalidRole)
		return
	}

	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), actor, role, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded successfully", result)
}
