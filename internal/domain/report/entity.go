package report

import (
	"sort"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
)

// Row is one attendance event joined with its slot and lookup names.
type Row struct {
	SlotID      int64
	TeacherID   int64
	TeacherName string // set only by views spanning several teachers
	Date        time.Time
	Hour        string
	SubjectName string
	GroupInfo   string
	Status      attendance.Status
	Role        attendance.Role
}

// RoleStatistics tallies one teacher's events in one role log.
type RoleStatistics struct {
	TeacherID   int64           `json:"teacher_id"`
	TeacherName string          `json:"teacher_name"`
	Role        attendance.Role `json:"role"`
	Subjects    []string        `json:"subjects"`
	Stats
}

// SortRows orders rows by date then hour, keeping storage order for ties.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortKey() < rows[j].SortKey() })
}
