package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

type ScheduleServiceImpl struct {
	slotRepo    schedule.SlotRepository
	catalogRepo catalog.CatalogRepository
}

func NewScheduleService(slotRepo schedule.SlotRepository, catalogRepo catalog.CatalogRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		slotRepo:    slotRepo,
		catalogRepo: catalogRepo,
	}
}

// ListSlots implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListSlots(ctx context.Context, filter schedule.SlotFilter) ([]schedule.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	responses := make([]schedule.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, schedule.NewSlotResponse(slot))
	}
	return responses, nil
}

// GetSlot implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSlot(ctx context.Context, id int64) (schedule.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.SlotResponse{}, err
	}
	return schedule.NewSlotResponse(slot), nil
}

// CreateSlot implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateSlot(ctx context.Context, req schedule.SlotRequest) (schedule.SlotResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.SlotResponse{}, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return schedule.SlotResponse{}, err
	}

	created, err := s.slotRepo.Create(ctx, req.ToSlot())
	if err != nil {
		return schedule.SlotResponse{}, slotWriteError("create", err)
	}

	slog.Info("Schedule slot created", "slot_id", created.ID, "teacher_id", created.TeacherID, "group_id", created.GroupID, "day", created.Day, "hour", created.Hour)
	return schedule.NewSlotResponse(created), nil
}

// UpdateSlot implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateSlot(ctx context.Context, id int64, req schedule.SlotRequest) (schedule.SlotResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.SlotResponse{}, err
	}
	if _, err := s.slotRepo.GetByID(ctx, id); err != nil {
		return schedule.SlotResponse{}, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return schedule.SlotResponse{}, err
	}

	slot := req.ToSlot()
	slot.ID = id
	updated, err := s.slotRepo.Update(ctx, slot)
	if err != nil {
		return schedule.SlotResponse{}, slotWriteError("update", err)
	}

	slog.Info("Schedule slot updated", "slot_id", updated.ID, "day", updated.Day, "hour", updated.Hour)
	return schedule.NewSlotResponse(updated), nil
}

// DeleteSlot implements schedule.ScheduleService. Attendance already recorded
// against the slot is kept and simply stops appearing in reports.
func (s *ScheduleServiceImpl) DeleteSlot(ctx context.Context, id int64) error {
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Schedule slot deleted", "slot_id", id)
	return nil
}

// checkReferences rejects slots pointing at unknown teachers, groups or subjects.
func (s *ScheduleServiceImpl) checkReferences(ctx context.Context, req schedule.SlotRequest) error {
	var errs validator.ValidationErrors

	teachers, err := s.catalogRepo.TeachersByIDs(ctx, []int64{req.TeacherID})
	if err != nil {
		return fmt.Errorf("failed to look up teacher: %w", err)
	}
	if _, ok := teachers[req.TeacherID]; !ok {
		errs.Add("teacher_id", "teacher_id does not reference a teacher")
	}

	groups, err := s.catalogRepo.GroupsByIDs(ctx, []int64{req.GroupID})
	if err != nil {
		return fmt.Errorf("failed to look up group: %w", err)
	}
	if _, ok := groups[req.GroupID]; !ok {
		errs.Add("group_id", "group_id does not reference a group")
	}

	subjects, err := s.catalogRepo.SubjectsByIDs(ctx, []int64{req.SubjectID})
	if err != nil {
		return fmt.Errorf("failed to look up subject: %w", err)
	}
	if _, ok := subjects[req.SubjectID]; !ok {
		errs.Add("subject_id", "subject_id does not reference a subject")
	}

	return errs.Err()
}

func slotWriteError(op string, err error) error {
	if errors.Is(err, schedule.ErrTeacherDoubleBooked) ||
		errors.Is(err, schedule.ErrGroupDoubleBooked) ||
		errors.Is(err, schedule.ErrSlotNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s slot: %w", op, err)
}
