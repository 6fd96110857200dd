package attendance

import (
	"context"
	"time"
)

// EventFilter selects events of one log. DateFrom and DateTo are inclusive;
// an empty SlotIDs matches nothing.
type EventFilter struct {
	SlotIDs  []int64
	DateFrom time.Time
	DateTo   time.Time
}

// Matches reports whether e falls inside the filter.
func (f EventFilter) Matches(e Event) bool {
	d := DateOnly(e.Date)
	if d.Before(DateOnly(f.DateFrom)) || d.After(DateOnly(f.DateTo)) {
		return false
	}
	for _, id := range f.SlotIDs {
		if id == e.SlotID {
			return true
		}
	}
	return false
}

type AttendanceRepository interface {
	// List returns the events of one role log matching the filter
	List(ctx context.Context, role Role, filter EventFilter) ([]Event, error)

	// Upsert inserts or overwrites the status for (slotID, date) in the role log
	Upsert(ctx context.Context, role Role, slotID int64, date time.Time, status Status) (Event, error)

	// InsertPendingIfAbsent creates a pending event unless one already exists.
	// Returns true when a row was inserted.
	InsertPendingIfAbsent(ctx context.Context, role Role, slotID int64, date time.Time) (bool, error)
}
