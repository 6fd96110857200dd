package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/storage"
)

const documentTitle = "Attendance report"

// BuildDocument implements report.ReportService.
func (s *ReportServiceImpl) BuildDocument(ctx context.Context, actor user.Actor, req report.DocumentRequest) (report.Document, error) {
	if err := req.Validate(); err != nil {
		return report.Document{}, err
	}
	if !actor.CanViewTeacher(req.TeacherID) {
		return report.Document{}, report.ErrForbiddenScope
	}

	teachers, err := s.catalogRepo.TeachersByIDs(ctx, []int64{req.TeacherID})
	if err != nil {
		return report.Document{}, dataAccess("lookup teacher", err)
	}
	teacher, ok := teachers[req.TeacherID]
	if !ok {
		return report.Document{}, report.ErrTeacherNotFound
	}

	byRole, err := s.fetchAllRoles(ctx, req.TeacherID, req.StartDate, req.EndDate)
	if err != nil {
		return report.Document{}, err
	}

	doc := report.Document{
		Title:       documentTitle,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Start:       req.StartDate,
		End:         req.EndDate,
		GeneratedAt: s.now(),
		Pages:       make([]report.Page, 0, len(attendance.Roles)),
	}
	for _, role := range attendance.Roles {
		rows := byRole[role]
		report.SortRows(rows)
		doc.Pages = append(doc.Pages, report.BuildPage(role, rows))
	}

	return doc, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, actor user.Actor, req report.ExportRequest) (report.ExportResult, error) {
	if err := req.Validate(); err != nil {
		return report.ExportResult{}, err
	}
	exporter, ok := s.exporters[req.Format]
	if !ok {
		return report.ExportResult{}, report.ErrUnsupportedFormat
	}
	if req.Archive && s.fileStorage == nil {
		return report.ExportResult{}, fmt.Errorf("%w: archive storage is not configured", report.ErrReportRenderFailed)
	}

	doc, err := s.BuildDocument(ctx, actor, req.DocumentRequest)
	if err != nil {
		return report.ExportResult{}, err
	}

	data, err := exporter.Export(doc)
	if err != nil {
		return report.ExportResult{}, fmt.Errorf("%w: %w", report.ErrReportRenderFailed, err)
	}

	result := report.ExportResult{
		FileName:    report.FileName(doc.TeacherName, doc.GeneratedAt, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Size:        len(data),
		Data:        data,
	}

	if req.Archive {
		key, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), storage.ReportKey(result.FileName, doc.GeneratedAt), result.ContentType)
		if err != nil {
			return report.ExportResult{}, fmt.Errorf("archive report: %w", err)
		}
		if result.URL, err = s.fileStorage.GetURL(ctx, key); err != nil {
			return report.ExportResult{}, fmt.Errorf("archive report url: %w", err)
		}
		slog.Info("Report archived", "teacher_id", doc.TeacherID, "format", req.Format, "key", key, "size", result.Size)
	}

	return result, nil
}
