package report

import (
	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
)

type Stats struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Percentage int `json:"percentage"`
}

// ComputeStats folds statuses into counts. Anything that is neither present
// nor absent (pending included) counts toward Total only.
func ComputeStats(statuses []attendance.Status) Stats {
	var s Stats
	for _, status := range statuses {
		s.add(status)
	}
	s.Percentage = Percent(s.Present, s.Total)
	return s
}

// Summarize computes stats over the statuses of rows.
func Summarize(rows []Row) Stats {
	var s Stats
	for _, r := range rows {
		s.add(r.Status)
	}
	s.Percentage = Percent(s.Present, s.Total)
	return s
}

func (s *Stats) add(status attendance.Status) {
	s.Total++
	switch status {
	case attendance.StatusPresent:
		s.Present++
	case attendance.StatusAbsent:
		s.Absent++
	}
}

// Percent returns part/total*100 rounded half up, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (2 * total)
}
