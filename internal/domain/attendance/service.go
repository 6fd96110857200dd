package attendance

import (
	"context"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type AttendanceService interface {
	// RecordAttendance upserts the actor's observation into the given role log
	RecordAttendance(ctx context.Context, actor user.Actor, role Role, req RecordAttendanceRequest) (EventResponse, error)

	// SeedPending inserts pending events for every slot scheduled on day's weekday
	SeedPending(ctx context.Context, day time.Time) (SeedResult, error)
}
