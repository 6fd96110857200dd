// Package cached decorates repositories with a read-through cache.
package cached

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/cache"
)

type catalogRepository struct {
	next  catalog.CatalogRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogRepository caches lookups of next. Cache errors never fail a
// read; the lookup falls through to next.
func NewCatalogRepository(next catalog.CatalogRepository, c cache.Cache, ttl time.Duration) catalog.CatalogRepository {
	return &catalogRepository{next: next, cache: c, ttl: ttl}
}

func (r *catalogRepository) TeachersByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Teacher, error) {
	return readThrough(ctx, r, "teacher", ids, r.next.TeachersByIDs)
}

func (r *catalogRepository) GroupsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Group, error) {
	return readThrough(ctx, r, "group", ids, r.next.GroupsByIDs)
}

func (r *catalogRepository) SubjectsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Subject, error) {
	return readThrough(ctx, r, "subject", ids, r.next.SubjectsByIDs)
}

func key(kind string, id int64) string {
	return fmt.Sprintf("catalog:%s:%d", kind, id)
}

func readThrough[V any](
	ctx context.Context,
	r *catalogRepository,
	kind string,
	ids []int64,
	load func(context.Context, []int64) (map[int64]V, error),
) (map[int64]V, error) {
	result := make(map[int64]V, len(ids))
	missing := make([]int64, 0, len(ids))

	for _, id := range ids {
		var v V
		err := r.cache.GetJSON(ctx, key(kind, id), &v)
		switch {
		case err == nil:
			result[id] = v
		case errors.Is(err, cache.ErrCacheMiss):
			missing = append(missing, id)
		default:
			slog.Warn("Catalog cache read failed", "kind", kind, "id", id, "error", err)
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, v := range loaded {
		result[id] = v
		if err := r.cache.SetJSON(ctx, key(kind, id), v, r.ttl); err != nil {
			slog.Warn("Catalog cache write failed", "kind", kind, "id", id, "error", err)
		}
	}

	return result, nil
}
