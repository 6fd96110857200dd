package schedule

import (
	"context"
)

type ScheduleService interface {
	ListSlots(ctx context.Context, filter SlotFilter) ([]SlotResponse, error)
	GetSlot(ctx context.Context, id int64) (SlotResponse, error)
	CreateSlot(ctx context.Context, req SlotRequest) (SlotResponse, error)
	UpdateSlot(ctx context.Context, id int64, req SlotRequest) (SlotResponse, error)
	DeleteSlot(ctx context.Context, id int64) error
}
