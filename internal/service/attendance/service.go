package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	slotRepo       schedule.SlotRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, slotRepo schedule.SlotRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		slotRepo:       slotRepo,
	}
}

// writableLog is the only log each non-admin role may write to.
var writableLog = map[user.Role]attendance.Role{
	user.RoleTeacher:     attendance.RoleTeacher,
	user.RoleGroupLeader: attendance.RoleGroupLeader,
	user.RoleChecker:     attendance.RoleChecker,
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, actor user.Actor, role attendance.Role, req attendance.RecordAttendanceRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}
	if !role.Valid() {
		return attendance.EventResponse{}, attendance.ErrInvalidRole
	}

	if actor.Role != user.RoleAdmin {
		if allowed, ok := writableLog[actor.Role]; !ok || allowed != role {
			return attendance.EventResponse{}, attendance.ErrForbiddenRole
		}
	}

	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	switch actor.Role {
	case user.RoleTeacher:
		if slot.TeacherID != actor.UserID {
			return attendance.EventResponse{}, attendance.ErrNotSlotOwner
		}
	case user.RoleGroupLeader:
		if actor.GroupID == nil || slot.GroupID != *actor.GroupID {
			return attendance.EventResponse{}, attendance.ErrNotSlotOwner
		}
	}

	if req.ParsedDate.Weekday() != slot.Day.Weekday() {
		var errs validator.ValidationErrors
		errs.Add("date", fmt.Sprintf("date falls on %s but the class is held on %s", req.ParsedDate.Weekday(), slot.Day))
		return attendance.EventResponse{}, errs
	}

	event, err := s.attendanceRepo.Upsert(ctx, role, slot.ID, req.ParsedDate, req.ParsedStatus)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record %s attendance: %w", role, err)
	}

	slog.Info("Attendance recorded", "role", role, "slot_id", slot.ID, "date", req.Date, "status", event.Status, "actor_id", actor.UserID)
	return attendance.NewEventResponse(event), nil
}

// SeedPending implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SeedPending(ctx context.Context, day time.Time) (attendance.SeedResult, error) {
	date := attendance.DateOnly(day)
	result := attendance.SeedResult{Date: date.Format(validator.DateLayout)}

	weekday, ok := schedule.DayFromWeekday(date.Weekday())
	if !ok {
		return result, nil
	}

	slots, err := s.slotRepo.List(ctx, schedule.SlotFilter{Day: &weekday})
	if err != nil {
		return result, fmt.Errorf("failed to list %s slots: %w", weekday, err)
	}
	result.Slots = len(slots)

	for _, slot := range slots {
		for _, role := range attendance.Roles {
			inserted, err := s.attendanceRepo.InsertPendingIfAbsent(ctx, role, slot.ID, date)
			if err != nil {
				return result, fmt.Errorf("failed to seed %s attendance for slot %d: %w", role, slot.ID, err)
			}
			if inserted {
				result.Inserted++
			}
		}
	}

	return result, nil
}
