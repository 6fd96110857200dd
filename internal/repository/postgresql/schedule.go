package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type slotRepositoryImpl struct {
	db *database.DB
}

func NewSlotRepository(db *database.DB) schedule.SlotRepository {
	return &slotRepositoryImpl{db: db}
}

const slotColumns = `id, teacher_id, group_id, subject_id, day, hour, created_at, updated_at`

func scanSlot(row pgx.Row) (schedule.Slot, error) {
	var s schedule.Slot
	err := row.Scan(&s.ID, &s.TeacherID, &s.GroupID, &s.SubjectID, &s.Day, &s.Hour, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// List implements schedule.SlotRepository.
func (r *slotRepositoryImpl) List(ctx context.Context, filter schedule.SlotFilter) ([]schedule.Slot, error) {
	q := GetQuerier(ctx, r.db)

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.TeacherID != nil {
		add("teacher_id", *filter.TeacherID)
	}
	if filter.GroupID != nil {
		add("group_id", *filter.GroupID)
	}
	if filter.Day != nil {
		add("day", string(*filter.Day))
	}
	if filter.Hour != nil {
		add("hour", string(*filter.Hour))
	}

	query := "SELECT " + slotColumns + " FROM schedule_slots"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := make([]schedule.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}

// GetByID implements schedule.SlotRepository.
func (r *slotRepositoryImpl) GetByID(ctx context.Context, id int64) (schedule.Slot, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSlot(q.QueryRow(ctx, "SELECT "+slotColumns+" FROM schedule_slots WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Slot{}, schedule.ErrSlotNotFound
		}
		return schedule.Slot{}, fmt.Errorf("get slot %d: %w", id, err)
	}
	return s, nil
}

// Create implements schedule.SlotRepository.
func (r *slotRepositoryImpl) Create(ctx context.Context, slot schedule.Slot) (schedule.Slot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_slots (teacher_id, group_id, subject_id, day, hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + slotColumns

	created, err := scanSlot(q.QueryRow(ctx, query, slot.TeacherID, slot.GroupID, slot.SubjectID, string(slot.Day), string(slot.Hour)))
	if err != nil {
		return schedule.Slot{}, mapSlotError(err)
	}
	return created, nil
}

// Update implements schedule.SlotRepository.
func (r *slotRepositoryImpl) Update(ctx context.Context, slot schedule.Slot) (schedule.Slot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_slots
		SET teacher_id = $1, group_id = $2, subject_id = $3, day = $4, hour = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + slotColumns

	updated, err := scanSlot(q.QueryRow(ctx, query, slot.TeacherID, slot.GroupID, slot.SubjectID, string(slot.Day), string(slot.Hour), slot.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Slot{}, schedule.ErrSlotNotFound
		}
		return schedule.Slot{}, mapSlotError(err)
	}
	return updated, nil
}

// Delete implements schedule.SlotRepository.
func (r *slotRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM schedule_slots WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete slot %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrSlotNotFound
	}
	return nil
}

// mapSlotError turns the double-booking constraints into domain errors so a
// race between two writers still reports the right conflict.
func mapSlotError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "uq_teacher_day_hour":
			return schedule.ErrTeacherDoubleBooked
		case "uq_group_day_hour":
			return schedule.ErrGroupDoubleBooked
		}
	}
	return fmt.Errorf("write slot: %w", err)
}
