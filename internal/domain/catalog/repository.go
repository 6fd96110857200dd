package catalog

import "context"

// CatalogRepository resolves the names referenced by schedule slots. Ids that
// do not exist are simply missing from the returned maps.
type CatalogRepository interface {
	TeachersByIDs(ctx context.Context, ids []int64) (map[int64]Teacher, error)
	GroupsByIDs(ctx context.Context, ids []int64) (map[int64]Group, error)
	SubjectsByIDs(ctx context.Context, ids []int64) (map[int64]Subject, error)
}
