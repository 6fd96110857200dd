package postgresql

import (
	"context"
	"fmt"

	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
)

type catalogRepositoryImpl struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) catalog.CatalogRepository {
	return &catalogRepositoryImpl{db: db}
}

// TeachersByIDs implements catalog.CatalogRepository.
func (r *catalogRepositoryImpl) TeachersByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Teacher, error) {
	result := make(map[int64]catalog.Teacher, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id, name FROM users WHERE id = ANY($1) AND role = 'teacher'`, ids)
	if err != nil {
		return nil, fmt.Errorf("query teachers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t catalog.Teacher
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		result[t.ID] = t
	}
	return result, rows.Err()
}

// GroupsByIDs implements catalog.CatalogRepository.
func (r *catalogRepositoryImpl) GroupsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Group, error) {
	result := make(map[int64]catalog.Group, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)
	query := `
		SELECT g.id, g.name, g.classroom, COALESCE(b.name, ''), g.career_id, g.leader_account
		FROM groups g
		LEFT JOIN buildings b ON b.id = g.building_id
		WHERE g.id = ANY($1)
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g catalog.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Classroom, &g.Building, &g.CareerID, &g.LeaderAccount); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		result[g.ID] = g
	}
	return result, rows.Err()
}

// SubjectsByIDs implements catalog.CatalogRepository.
func (r *catalogRepositoryImpl) SubjectsByIDs(ctx context.Context, ids []int64) (map[int64]catalog.Subject, error) {
	result := make(map[int64]catalog.Subject, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT id, name, semester, career_id FROM subjects WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s catalog.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Semester, &s.CareerID); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		result[s.ID] = s
	}
	return result, rows.Err()
}
