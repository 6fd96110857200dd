package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) List(ctx context.Context, role attendance.Role, filter attendance.EventFilter) ([]attendance.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	log, ok := r.store.logs[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", attendance.ErrInvalidRole, role)
	}

	events := make([]attendance.Event, 0)
	for _, e := range log {
		if filter.Matches(e) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (r *attendanceRepository) Upsert(ctx context.Context, role attendance.Role, slotID int64, date time.Time, status attendance.Status) (attendance.Event, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Event{}, err
	}
	if !role.Valid() {
		return attendance.Event{}, fmt.Errorf("%w: %q", attendance.ErrInvalidRole, role)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.upsertLocked(role, slotID, date, status), nil
}

func (r *attendanceRepository) InsertPendingIfAbsent(ctx context.Context, role attendance.Role, slotID int64, date time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !role.Valid() {
		return false, fmt.Errorf("%w: %q", attendance.ErrInvalidRole, role)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.logs[role][eventKey{slotID: slotID, date: attendance.DateOnly(date)}]; ok {
		return false, nil
	}
	r.store.upsertLocked(role, slotID, date, attendance.StatusPending)
	return true, nil
}
