package schedule

import (
	"context"
)

// SlotFilter narrows ListSlots. Nil fields are not filtered on.
type SlotFilter struct {
	TeacherID *int64
	GroupID   *int64
	Day       *Day
	Hour      *Hour
}

type SlotRepository interface {
	// List returns slots matching the filter in storage order
	List(ctx context.Context, filter SlotFilter) ([]Slot, error)

	GetByID(ctx context.Context, id int64) (Slot, error)

	Create(ctx context.Context, slot Slot) (Slot, error)

	Update(ctx context.Context, slot Slot) (Slot, error)

	Delete(ctx context.Context, id int64) error
}
