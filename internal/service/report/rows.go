package report

import (
	"context"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

// FetchByGroupRows implements report.ReportService.
func (s *ReportServiceImpl) FetchByGroupRows(ctx context.Context, actor user.Actor, req report.GroupRowsRequest) ([]report.Row, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanViewGroup(req.GroupID) {
		return nil, report.ErrForbiddenScope
	}

	set, err := s.loadSlots(ctx, schedule.SlotFilter{GroupID: &req.GroupID})
	if err != nil {
		return nil, err
	}
	rows, err := s.rowsFor(ctx, set, req.ParsedRole, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	return s.withTeacherNames(ctx, rows)
}

// FetchCheckerRows implements report.ReportService.
func (s *ReportServiceImpl) FetchCheckerRows(ctx context.Context, actor user.Actor, req report.RangeRequest) ([]report.Row, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanViewAll() {
		return nil, report.ErrForbiddenScope
	}

	set, err := s.loadSlots(ctx, schedule.SlotFilter{})
	if err != nil {
		return nil, err
	}
	rows, err := s.rowsFor(ctx, set, attendance.RoleChecker, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	return s.withTeacherNames(ctx, rows)
}

func (s *ReportServiceImpl) withTeacherNames(ctx context.Context, rows []report.Row) ([]report.Row, error) {
	if len(rows) == 0 {
		return rows, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = appendUnique(ids, row.TeacherID)
	}
	teachers, err := s.catalogRepo.TeachersByIDs(ctx, ids)
	if err != nil {
		return nil, dataAccess("lookup teachers", err)
	}

	for i := range rows {
		rows[i].TeacherName = teacherName(teachers, rows[i].TeacherID)
	}
	return rows, nil
}
