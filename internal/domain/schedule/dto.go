package schedule

import (
	"strings"

	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

type SlotRequest struct {
	TeacherID int64  `json:"teacher_id"`
	GroupID   int64  `json:"group_id"`
	SubjectID int64  `json:"subject_id"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
}

func (r *SlotRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TeacherID <= 0 {
		errs.Add("teacher_id", "teacher_id is required")
	}
	if r.GroupID <= 0 {
		errs.Add("group_id", "group_id is required")
	}
	if r.SubjectID <= 0 {
		errs.Add("subject_id", "subject_id is required")
	}

	if day, ok := ParseDay(r.Day); !ok {
		errs.Add("day", "day must be one of: "+strings.Join(DayValues, ", "))
	} else {
		r.Day = string(day)
	}

	if !Hour(r.Hour).Valid() {
		errs.Add("hour", "hour must be one of: "+strings.Join(HourValues, ", "))
	}

	return errs.Err()
}

// ToSlot converts a validated request into an entity.
func (r SlotRequest) ToSlot() Slot {
	return Slot{
		TeacherID: r.TeacherID,
		GroupID:   r.GroupID,
		SubjectID: r.SubjectID,
		Day:       Day(r.Day),
		Hour:      Hour(r.Hour),
	}
}

type SlotResponse struct {
	ID        int64  `json:"id"`
	TeacherID int64  `json:"teacher_id"`
	GroupID   int64  `json:"group_id"`
	SubjectID int64  `json:"subject_id"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
}

func NewSlotResponse(s Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		TeacherID: s.TeacherID,
		GroupID:   s.GroupID,
		SubjectID: s.SubjectID,
		Day:       string(s.Day),
		Hour:      string(s.Hour),
	}
}
