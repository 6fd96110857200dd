package cached

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	data    map[string][]byte
	failGet bool
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, dst any) error {
	if c.failGet {
		return errors.New("connection refused")
	}
	b, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dst)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type countingCatalog struct {
	groups map[int64]catalog.Group
	calls  [][]int64
	err    error
}

func (c *countingCatalog) TeachersByIDs(context.Context, []int64) (map[int64]catalog.Teacher, error) {
	return map[int64]catalog.Teacher{}, nil
}

func (c *countingCatalog) GroupsByIDs(_ context.Context, ids []int64) (map[int64]catalog.Group, error) {
	c.calls = append(c.calls, ids)
	if c.err != nil {
		return nil, c.err
	}
	out := map[int64]catalog.Group{}
	for _, id := range ids {
		if g, ok := c.groups[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (c *countingCatalog) SubjectsByIDs(context.Context, []int64) (map[int64]catalog.Subject, error) {
	return map[int64]catalog.Subject{}, nil
}

func TestCatalogRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{groups: map[int64]catalog.Group{1: {ID: 1, Name: "3A", Classroom: "Aula 12", Building: "B"}}}
	repo := NewCatalogRepository(inner, newMapCache(), time.Minute)

	first, err := repo.GroupsByIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "3A", first[1].Name)
	assert.NotContains(t, first, int64(2))

	second, err := repo.GroupsByIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the second call only asks for the id that was never found
	require.Len(t, inner.calls, 2)
	assert.Equal(t, []int64{2}, inner.calls[1])
}

func TestCatalogRepository_CacheFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{groups: map[int64]catalog.Group{1: {ID: 1, Name: "3A"}}}
	c := newMapCache()
	c.failGet = true
	repo := NewCatalogRepository(inner, c, time.Minute)

	got, err := repo.GroupsByIDs(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, "3A", got[1].Name)
}

func TestCatalogRepository_LoaderErrorPropagates(t *testing.T) {
	inner := &countingCatalog{err: errors.New("db down")}
	repo := NewCatalogRepository(inner, newMapCache(), time.Minute)

	_, err := repo.GroupsByIDs(context.Background(), []int64{1})
	assert.EqualError(t, err, "db down")
}
