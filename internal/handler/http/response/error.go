package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/auth"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/storage"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Schedule domain errors
	case errors.Is(err, schedule.ErrSlotNotFound):
		NotFound(w, "Schedule slot not found")
	case errors.Is(err, schedule.ErrTeacherDoubleBooked),
		errors.Is(err, schedule.ErrGroupDoubleBooked):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidRole),
		errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrForbiddenRole),
		errors.Is(err, attendance.ErrNotSlotOwner):
		Forbidden(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrForbiddenScope):
		Forbidden(w, err.Error())
	case errors.Is(err, report.ErrTeacherNotFound):
		NotFound(w, "Teacher not found")
	case errors.Is(err, report.ErrUnsupportedFormat):
		ValidationError(w, map[string]string{"format": err.Error()})
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, report.ErrDataAccess):
		slog.Error("Attendance data access failed", "error", err)
		InternalServerError(w, "Failed to read attendance data")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
