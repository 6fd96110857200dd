package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
)

// AttendanceJobs seeds pending attendance for the classes of the current day.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService, now: time.Now}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("seed_pending_attendance", interval, j.SeedPendingAttendance)
}

// SeedPendingAttendance never overwrites a status somebody already recorded.
func (j *AttendanceJobs) SeedPendingAttendance(ctx context.Context) error {
	result, err := j.attendanceService.SeedPending(ctx, j.now())
	if err != nil {
		return err
	}
	if result.Inserted > 0 {
		slog.Info("Cron: Seeded pending attendance", "date", result.Date, "slots", result.Slots, "inserted", result.Inserted)
	}
	return nil
}
