package report

import (
	"context"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type ReportService interface {
	// FetchByTeacherAndRange returns one role log's events for a teacher's slots
	FetchByTeacherAndRange(ctx context.Context, actor user.Actor, req TeacherRangeRequest) ([]Row, error)

	// FetchByGroupAndRange tallies all three logs per (teacher, role) for a group's slots
	FetchByGroupAndRange(ctx context.Context, actor user.Actor, req GroupRangeRequest) ([]RoleStatistics, error)

	// FetchByGroupRows returns one role log's events for every slot of a group
	FetchByGroupRows(ctx context.Context, actor user.Actor, req GroupRowsRequest) ([]Row, error)

	// FetchCheckerRows returns the checker log's events across all slots
	FetchCheckerRows(ctx context.Context, actor user.Actor, req RangeRequest) ([]Row, error)

	FetchAllRoles(ctx context.Context, actor user.Actor, teacherID int64, start, end time.Time) (map[attendance.Role][]Row, error)

	// TeacherRanking tallies every teacher in one log, best percentage first
	TeacherRanking(ctx context.Context, actor user.Actor, req RankingRequest) ([]RoleStatistics, error)

	BuildDocument(ctx context.Context, actor user.Actor, req DocumentRequest) (Document, error)
	Export(ctx context.Context, actor user.Actor, req ExportRequest) (ExportResult, error)
}

// Exporter encodes a Document into a downloadable file.
type Exporter interface {
	Export(doc Document) ([]byte, error)
	Extension() string
	ContentType() string
}
