package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// logQueries holds the statements for one role log.
type logQueries struct {
	list         string
	upsert       string
	insertIfNone string
}

func newLogQueries(table string) logQueries {
	return logQueries{
		list: `SELECT id, slot_id, date, status, created_at, updated_at FROM ` + table + `
			WHERE slot_id = ANY($1) AND date BETWEEN $2 AND $3
			ORDER BY id`,
		upsert: `INSERT INTO ` + table + ` (slot_id, date, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (slot_id, date) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
			RETURNING id, slot_id, date, status, created_at, updated_at`,
		insertIfNone: `INSERT INTO ` + table + ` (slot_id, date, status)
			VALUES ($1, $2, 'pending')
			ON CONFLICT (slot_id, date) DO NOTHING`,
	}
}

// Fixed role to table mapping. Table names never come from input.
var attendanceLogs = map[attendance.Role]logQueries{
	attendance.RoleTeacher:     newLogQueries("teacher_attendance"),
	attendance.RoleGroupLeader: newLogQueries("group_leader_attendance"),
	attendance.RoleChecker:     newLogQueries("checker_attendance"),
}

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func queriesFor(role attendance.Role) (logQueries, error) {
	lq, ok := attendanceLogs[role]
	if !ok {
		return logQueries{}, fmt.Errorf("%w: %q", attendance.ErrInvalidRole, role)
	}
	return lq, nil
}

func scanEvent(row pgx.Row, role attendance.Role) (attendance.Event, error) {
	var e attendance.Event
	var status string
	if err := row.Scan(&e.ID, &e.SlotID, &e.Date, &status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return attendance.Event{}, err
	}
	e.Status, _ = attendance.ParseStatus(status)
	e.Role = role
	return e, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, role attendance.Role, filter attendance.EventFilter) ([]attendance.Event, error) {
	lq, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	if len(filter.SlotIDs) == 0 {
		return []attendance.Event{}, nil
	}

	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, lq.list, filter.SlotIDs, attendance.DateOnly(filter.DateFrom), attendance.DateOnly(filter.DateTo))
	if err != nil {
		return nil, fmt.Errorf("list %s attendance: %w", role, err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows, role)
		if err != nil {
			return nil, fmt.Errorf("scan %s attendance: %w", role, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s attendance: %w", role, err)
	}

	return events, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, role attendance.Role, slotID int64, date time.Time, status attendance.Status) (attendance.Event, error) {
	lq, err := queriesFor(role)
	if err != nil {
		return attendance.Event{}, err
	}

	q := GetQuerier(ctx, r.db)
	e, err := scanEvent(q.QueryRow(ctx, lq.upsert, slotID, attendance.DateOnly(date), string(status)), role)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("upsert %s attendance: %w", role, err)
	}
	return e, nil
}

// InsertPendingIfAbsent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) InsertPendingIfAbsent(ctx context.Context, role attendance.Role, slotID int64, date time.Time) (bool, error) {
	lq, err := queriesFor(role)
	if err != nil {
		return false, err
	}

	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, lq.insertIfNone, slotID, attendance.DateOnly(date))
	if err != nil {
		return false, fmt.Errorf("seed %s attendance: %w", role, err)
	}
	return tag.RowsAffected() > 0, nil
}
