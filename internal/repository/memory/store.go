// Package memory holds mutex guarded in-memory repositories used for local
// development and tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type eventKey struct {
	slotID int64
	date   time.Time
}

// Store is shared by all memory repositories.
type Store struct {
	mu sync.RWMutex

	slots  map[int64]schedule.Slot
	logs   map[attendance.Role]map[eventKey]attendance.Event
	users  map[int64]user.User
	groups map[int64]catalog.Group
	subs   map[int64]catalog.Subject

	nextSlotID  int64
	nextEventID int64
	nextUserID  int64
	nextGroupID int64
	nextSubID   int64

	now func() time.Time
}

func NewStore() *Store {
	s := &Store{
		slots:  make(map[int64]schedule.Slot),
		logs:   make(map[attendance.Role]map[eventKey]attendance.Event),
		users:  make(map[int64]user.User),
		groups: make(map[int64]catalog.Group),
		subs:   make(map[int64]catalog.Subject),
		now:    time.Now,
	}
	for _, role := range attendance.Roles {
		s.logs[role] = make(map[eventKey]attendance.Event)
	}
	return s
}

// AddUser stores u with a fresh id and returns it.
func (s *Store) AddUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	u.ID = s.nextUserID
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u
}

func (s *Store) AddGroup(g catalog.Group) catalog.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGroupID++
	g.ID = s.nextGroupID
	s.groups[g.ID] = g
	return g
}

func (s *Store) AddSubject(sub catalog.Subject) catalog.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	sub.ID = s.nextSubID
	s.subs[sub.ID] = sub
	return sub
}

// InsertEvent writes an event without any slot check. Tests use it to plant
// orphaned records.
func (s *Store) InsertEvent(role attendance.Role, slotID int64, date time.Time, status attendance.Status) attendance.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLocked(role, slotID, date, status)
}

// RemoveSlot deletes a slot but keeps its attendance, as an edited schedule would.
func (s *Store) RemoveSlot(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, id)
}

func (s *Store) upsertLocked(role attendance.Role, slotID int64, date time.Time, status attendance.Status) attendance.Event {
	key := eventKey{slotID: slotID, date: attendance.DateOnly(date)}
	now := s.now()

	e, ok := s.logs[role][key]
	if !ok {
		s.nextEventID++
		e = attendance.Event{
			ID:        s.nextEventID,
			SlotID:    slotID,
			Date:      key.date,
			Role:      role,
			CreatedAt: now,
		}
	}
	e.Status = status
	e.UpdatedAt = now
	s.logs[role][key] = e
	return e
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
