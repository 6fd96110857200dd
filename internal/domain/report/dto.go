package report

import (
	"errors"
	"strings"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

// ========================================
// TEACHER RANGE
// ========================================

type TeacherRangeRequest struct {
	TeacherID int64  `json:"teacher_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Role      string `json:"role"`

	StartDate  time.Time       `json:"-"`
	EndDate    time.Time       `json:"-"`
	ParsedRole attendance.Role `json:"-"`
}

func (r *TeacherRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TeacherID <= 0 {
		errs.Add("teacher_id", "teacher_id is required")
	}
	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)
	r.ParsedRole = validateRole(&errs, r.Role)

	return errs.Err()
}

type RowResponse struct {
	Date      string `json:"date"`
	Hour      string `json:"hour"`
	Teacher   string `json:"teacher,omitempty"`
	Subject   string `json:"subject"`
	GroupInfo string `json:"group_info"`
	Status    string `json:"status"`
	Role      string `json:"role"`
}

func NewRowResponse(r Row) RowResponse {
	return RowResponse{
		Date:      r.Date.Format(validator.DateLayout),
		Hour:      r.Hour,
		Teacher:   r.TeacherName,
		Subject:   r.SubjectName,
		GroupInfo: r.GroupInfo,
		Status:    string(r.Status),
		Role:      string(r.Role),
	}
}

// NewRowResponses sorts rows for display and converts them.
func NewRowResponses(rows []Row) []RowResponse {
	SortRows(rows)
	result := make([]RowResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, NewRowResponse(row))
	}
	return result
}

type TeacherAttendanceResponse struct {
	TeacherID int64         `json:"teacher_id"`
	Role      string        `json:"role"`
	Start     string        `json:"start"`
	End       string        `json:"end"`
	Stats     Stats         `json:"stats"`
	Rows      []RowResponse `json:"rows"`
}

// ========================================
// GROUP RANGE
// ========================================

type GroupRangeRequest struct {
	GroupID int64  `json:"group_id"`
	Start   string `json:"start"`
	End     string `json:"end"`

	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
}

func (r *GroupRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GroupID <= 0 {
		errs.Add("group_id", "group_id is required")
	}
	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)

	return errs.Err()
}

type GroupAttendanceResponse struct {
	GroupID  int64            `json:"group_id"`
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Teachers []RoleStatistics `json:"teachers"`
}

// ========================================
// GROUP / LOG ROWS
// ========================================

// GroupRowsRequest selects one role log's rows for every slot of a group.
type GroupRowsRequest struct {
	GroupID int64  `json:"group_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Role    string `json:"role"`

	StartDate  time.Time       `json:"-"`
	EndDate    time.Time       `json:"-"`
	ParsedRole attendance.Role `json:"-"`
}

func (r *GroupRowsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GroupID <= 0 {
		errs.Add("group_id", "group_id is required")
	}
	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)
	r.ParsedRole = validateRole(&errs, r.Role)

	return errs.Err()
}

// RangeRequest is a bare date range.
type RangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`

	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors
	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)
	return errs.Err()
}

type RowsResponse struct {
	GroupID *int64        `json:"group_id,omitempty"`
	Role    string        `json:"role"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Stats   Stats         `json:"stats"`
	Rows    []RowResponse `json:"rows"`
}

// ========================================
// TEACHER RANKING
// ========================================

type RankingRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Role  string `json:"role"`

	StartDate  time.Time       `json:"-"`
	EndDate    time.Time       `json:"-"`
	ParsedRole attendance.Role `json:"-"`
}

func (r *RankingRequest) Validate() error {
	var errs validator.ValidationErrors

	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)
	r.ParsedRole = validateRole(&errs, r.Role)

	return errs.Err()
}

// ========================================
// DOCUMENT / EXPORT
// ========================================

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var FormatValues = []string{FormatPDF, FormatXLSX}

type DocumentRequest struct {
	TeacherID int64  `json:"teacher_id"`
	Start     string `json:"start"`
	End       string `json:"end"`

	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
}

func (r *DocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TeacherID <= 0 {
		errs.Add("teacher_id", "teacher_id is required")
	}
	r.StartDate, r.EndDate = validator.DateRange(&errs, "start", r.Start, "end", r.End)

	return errs.Err()
}

type ExportRequest struct {
	DocumentRequest
	Format  string `json:"format"`
	Archive bool   `json:"archive"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.DocumentRequest.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	if r.Format == "" {
		r.Format = FormatPDF
	}
	if !validator.IsInSlice(r.Format, FormatValues) {
		errs.Add("format", "format must be one of: "+strings.Join(FormatValues, ", "))
	}

	return errs.Err()
}

// ExportResult carries the encoded file; URL is set when it was archived.
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	URL         string `json:"url,omitempty"`
	Data        []byte `json:"-"`
}

func validateRole(errs *validator.ValidationErrors, raw string) attendance.Role {
	if validator.IsEmpty(raw) {
		errs.Add("role", "role is required")
		return ""
	}
	role, ok := attendance.ParseRole(raw)
	if !ok {
		errs.Add("role", "role must be one of: "+strings.Join(attendance.RoleValues, ", "))
	}
	return role
}
