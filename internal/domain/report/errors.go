package report

import "errors"

var (
	ErrDataAccess         = errors.New("failed to read attendance data")
	ErrForbiddenScope     = errors.New("you are not allowed to view this attendance data")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrReportRenderFailed = errors.New("failed to render report")
)
