package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/handler/http/response"
)

type ReportHandler interface {
	// Per-teacher rows and stats for one role log
	TeacherAttendance(w http.ResponseWriter, r *http.Request)

	// Per-teacher-per-role stats for a group
	GroupAttendance(w http.ResponseWriter, r *http.Request)

	// One role log's rows for a group, and the checker log across all slots
	GroupRows(w http.ResponseWriter, r *http.Request)
	CheckerRows(w http.ResponseWriter, r *http.Request)

	// General teacher statistics
	TeacherRanking(w http.ResponseWriter, r *http.Request)

	// Structured report document and its file exports
	TeacherDocument(w http.ResponseWriter, r *http.Request)
	TeacherExport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// TeacherAttendance handles GET /reports/teachers/{id}/attendance
func (h *reportHandlerImpl) TeacherAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	teacherID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	req := report.TeacherRangeRequest{
		TeacherID: teacherID,
		Start:     q.Get("start"),
		End:       q.Get("end"),
		Role:      q.Get("role"),
	}

	rows, err := h.reportService.FetchByTeacherAndRange(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// the service validated its own copy of req
	role, _ := attendance.ParseRole(req.Role)
	response.Success(w, report.TeacherAttendanceResponse{
		TeacherID: teacherID,
		Role:      string(role),
		Start:     req.Start,
		End:       req.End,
		Stats:     report.Summarize(rows),
		Rows:      report.NewRowResponses(rows),
	})
}

// GroupAttendance handles GET /reports/groups/{id}/attendance
func (h *reportHandlerImpl) GroupAttendance(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	groupID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	req := report.GroupRangeRequest{
		GroupID: groupID,
		Start:   q.Get("start"),
		End:     q.Get("end"),
	}

	stats, err := h.reportService.FetchByGroupAndRange(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.GroupAttendanceResponse{
		GroupID:  groupID,
		Start:    req.Start,
		End:      req.End,
		Teachers: stats,
	})
}

// GroupRows handles GET /reports/groups/{id}/rows
func (h *reportHandlerImpl) GroupRows(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	groupID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	req := report.GroupRowsRequest{
		GroupID: groupID,
		Start:   q.Get("start"),
		End:     q.Get("end"),
		Role:    q.Get("role"),
	}

	rows, err := h.reportService.FetchByGroupRows(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	role, _ := attendance.ParseRole(req.Role)
	response.SuccessWithMeta(w, report.RowsResponse{
		GroupID: &groupID,
		Role:    string(role),
		Start:   req.Start,
		End:     req.End,
		Stats:   report.Summarize(rows),
		Rows:    report.NewRowResponses(rows),
	}, &response.Meta{TotalItems: int64(len(rows))})
}

// CheckerRows handles GET /reports/checker/rows
func (h *reportHandlerImpl) CheckerRows(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := report.RangeRequest{Start: q.Get("start"), End: q.Get("end")}

	rows, err := h.reportService.FetchCheckerRows(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, report.RowsResponse{
		Role:  string(attendance.RoleChecker),
		Start: req.Start,
		End:   req.End,
		Stats: report.Summarize(rows),
		Rows:  report.NewRowResponses(rows),
	}, &response.Meta{TotalItems: int64(len(rows))})
}

// TeacherRanking handles GET /reports/teachers/ranking
func (h *reportHandlerImpl) TeacherRanking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	ranking, err := h.reportService.TeacherRanking(r.Context(), actor, report.RankingRequest{
		Start: q.Get("start"),
		End:   q.Get("end"),
		Role:  q.Get("role"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ranking)
}

// TeacherDocument handles GET /reports/teachers/{id}/document
func (h *reportHandlerImpl) TeacherDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	teacherID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	doc, err := h.reportService.BuildDocument(r.Context(), actor, report.DocumentRequest{
		TeacherID: teacherID,
		Start:     q.Get("start"),
		End:       q.Get("end"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, doc)
}

// TeacherExport handles GET /reports/teachers/{id}/export. The file is
// streamed back unless archive=true, in which case its URL is returned.
func (h *reportHandlerImpl) TeacherExport(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	teacherID, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	req := report.ExportRequest{
		DocumentRequest: report.DocumentRequest{
			TeacherID: teacherID,
			Start:     q.Get("start"),
			End:       q.Get("end"),
		},
		Format: q.Get("format"),
	}
	if raw := q.Get("archive"); raw != "" {
		archive, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "invalid archive parameter", nil)
			return
		}
		req.Archive = archive
	}

	result, err := h.reportService.Export(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Archive {
		response.SuccessWithMessage(w, "Report archived successfully", result)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(result.Size))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		slog.Error("Failed to write report", "file", result.FileName, "error", err)
	}
}
