package memory

import (
	"context"

	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
)

type slotRepository struct {
	store *Store
}

func NewSlotRepository(store *Store) schedule.SlotRepository {
	return &slotRepository{store: store}
}

func matchesSlot(f schedule.SlotFilter, s schedule.Slot) bool {
	if f.TeacherID != nil && *f.TeacherID != s.TeacherID {
		return false
	}
	if f.GroupID != nil && *f.GroupID != s.GroupID {
		return false
	}
	if f.Day != nil && *f.Day != s.Day {
		return false
	}
	if f.Hour != nil && *f.Hour != s.Hour {
		return false
	}
	return true
}

func (r *slotRepository) List(ctx context.Context, filter schedule.SlotFilter) ([]schedule.Slot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slots := make([]schedule.Slot, 0)
	for _, id := range sortedKeys(r.store.slots) {
		if s := r.store.slots[id]; matchesSlot(filter, s) {
			slots = append(slots, s)
		}
	}
	return slots, nil
}

func (r *slotRepository) GetByID(ctx context.Context, id int64) (schedule.Slot, error) {
	if err := ctx.Err(); err != nil {
		return schedule.Slot{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.slots[id]
	if !ok {
		return schedule.Slot{}, schedule.ErrSlotNotFound
	}
	return s, nil
}

func (r *slotRepository) Create(ctx context.Context, slot schedule.Slot) (schedule.Slot, error) {
	if err := ctx.Err(); err != nil {
		return schedule.Slot{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.conflictLocked(slot); err != nil {
		return schedule.Slot{}, err
	}
	r.store.nextSlotID++
	slot.ID = r.store.nextSlotID
	slot.CreatedAt = r.store.now()
	slot.UpdatedAt = slot.CreatedAt
	r.store.slots[slot.ID] = slot
	return slot, nil
}

func (r *slotRepository) Update(ctx context.Context, slot schedule.Slot) (schedule.Slot, error) {
	if err := ctx.Err(); err != nil {
		return schedule.Slot{}, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.slots[slot.ID]
	if !ok {
		return schedule.Slot{}, schedule.ErrSlotNotFound
	}
	if err := r.conflictLocked(slot); err != nil {
		return schedule.Slot{}, err
	}
	slot.CreatedAt = existing.CreatedAt
	slot.UpdatedAt = r.store.now()
	r.store.slots[slot.ID] = slot
	return slot, nil
}

func (r *slotRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.slots[id]; !ok {
		return schedule.ErrSlotNotFound
	}
	delete(r.store.slots, id)
	return nil
}

// conflictLocked mirrors the unique constraints of the SQL schema.
func (r *slotRepository) conflictLocked(slot schedule.Slot) error {
	for _, other := range r.store.slots {
		if other.ID == slot.ID || other.Day != slot.Day || other.Hour != slot.Hour {
			continue
		}
		if other.TeacherID == slot.TeacherID {
			return schedule.ErrTeacherDoubleBooked
		}
		if other.GroupID == slot.GroupID {
			return schedule.ErrGroupDoubleBooked
		}
	}
	return nil
}
