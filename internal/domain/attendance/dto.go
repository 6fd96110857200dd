package attendance

import (
	"strings"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

type RecordAttendanceRequest struct {
	SlotID int64  `json:"slot_id"`
	Date   string `json:"date"`
	Status string `json:"status"`

	// Filled by Validate
	ParsedDate   time.Time `json:"-"`
	ParsedStatus Status    `json:"-"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SlotID <= 0 {
		errs.Add("slot_id", "slot_id is required")
	}

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	} else {
		r.ParsedDate = d
	}

	if status, ok := ParseStatus(r.Status); !ok {
		errs.Add("status", "status must be one of: "+strings.Join(StatusValues, ", "))
	} else {
		r.ParsedStatus = status
	}

	return errs.Err()
}

type EventResponse struct {
	ID     int64  `json:"id"`
	SlotID int64  `json:"slot_id"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Role   string `json:"role"`
}

func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:     e.ID,
		SlotID: e.SlotID,
		Date:   e.Date.Format(validator.DateLayout),
		Status: string(e.Status),
		Role:   string(e.Role),
	}
}

// SeedResult reports what the automatic pending job did for one day.
type SeedResult struct {
	Date     string `json:"date"`
	Slots    int    `json:"slots"`
	Inserted int    `json:"inserted"`
}
