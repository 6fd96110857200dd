package memory

import (
	"context"

	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type catalogRepository struct {
	store *Store
}

func NewCatalogRepository(store *Store) catalog.CatalogRepository {
	return &catalogRepository{store: store}
}

func (r *catalogRepository) TeachersByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[int64]catalog.Teacher, len(ids))
	for _, id := range ids {
		if u, ok := r.store.users[id]; ok && u.Role == user.RoleTeacher {
			result[id] = catalog.Teacher{ID: u.ID, Name: u.Name}
		}
	}
	return result, nil
}

func (r *catalogRepository) GroupsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[int64]catalog.Group, len(ids))
	for _, id := range ids {
		if g, ok := r.store.groups[id]; ok {
			result[id] = g
		}
	}
	return result, nil
}

func (r *catalogRepository) SubjectsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Subject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[int64]catalog.Subject, len(ids))
	for _, id := range ids {
		if s, ok := r.store.subs[id]; ok {
			result[id] = s
		}
	}
	return result, nil
}
