package report

import (
	"context"
	"fmt"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/storage"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/validator"
)

type ReportServiceImpl struct {
	slotRepo       schedule.SlotRepository
	attendanceRepo attendance.AttendanceRepository
	catalogRepo    catalog.CatalogRepository
	exporters      map[string]report.Exporter
	fileStorage    storage.FileStorage
	now            func() time.Time
}

// NewReportService wires the aggregator. fileStorage may be nil, in which
// case archived exports are refused.
func NewReportService(
	slotRepo schedule.SlotRepository,
	attendanceRepo attendance.AttendanceRepository,
	catalogRepo catalog.CatalogRepository,
	fileStorage storage.FileStorage,
	exporters ...report.Exporter,
) report.ReportService {
	byFormat := make(map[string]report.Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Extension()] = e
	}

	return &ReportServiceImpl{
		slotRepo:       slotRepo,
		attendanceRepo: attendanceRepo,
		catalogRepo:    catalogRepo,
		exporters:      byFormat,
		fileStorage:    fileStorage,
		now:            time.Now,
	}
}

func dataAccess(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", report.ErrDataAccess, op, err)
}

// FetchByTeacherAndRange implements report.ReportService.
func (s *ReportServiceImpl) FetchByTeacherAndRange(ctx context.Context, actor user.Actor, req report.TeacherRangeRequest) ([]report.Row, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanViewTeacher(req.TeacherID) {
		return nil, report.ErrForbiddenScope
	}

	tc, err := s.loadSlots(ctx, schedule.SlotFilter{TeacherID: &req.TeacherID})
	if err != nil {
		return nil, err
	}
	return s.rowsFor(ctx, tc, req.ParsedRole, req.StartDate, req.EndDate)
}

// FetchAllRoles implements report.ReportService.
func (s *ReportServiceImpl) FetchAllRoles(ctx context.Context, actor user.Actor, teacherID int64, start, end time.Time) (map[attendance.Role][]report.Row, error) {
	var errs validator.ValidationErrors
	if teacherID <= 0 {
		errs.Add("teacher_id", "teacher_id is required")
	}
	if start.IsZero() || end.IsZero() {
		errs.Add("start", "start and end are required")
	} else if end.Before(start) {
		errs.Add("end", "end must not be before start")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if !actor.CanViewTeacher(teacherID) {
		return nil, report.ErrForbiddenScope
	}
	return s.fetchAllRoles(ctx, teacherID, start, end)
}

func (s *ReportServiceImpl) fetchAllRoles(ctx context.Context, teacherID int64, start, end time.Time) (map[attendance.Role][]report.Row, error) {
	tc, err := s.loadSlots(ctx, schedule.SlotFilter{TeacherID: &teacherID})
	if err != nil {
		return nil, err
	}

	result := make(map[attendance.Role][]report.Row, len(attendance.Roles))
	for _, role := range attendance.Roles {
		rows, err := s.rowsFor(ctx, tc, role, start, end)
		if err != nil {
			return nil, err
		}
		result[role] = rows
	}
	return result, nil
}

// slotSet is the schedule side of a join plus the names its slots reference.
type slotSet struct {
	slots    map[int64]schedule.Slot
	ids      []int64
	groups   map[int64]catalog.Group
	subjects map[int64]catalog.Subject
}

func (s *ReportServiceImpl) loadSlots(ctx context.Context, filter schedule.SlotFilter) (slotSet, error) {
	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		return slotSet{}, dataAccess("list slots", err)
	}

	set := slotSet{slots: make(map[int64]schedule.Slot, len(slots)), ids: make([]int64, 0, len(slots))}
	groupIDs := make([]int64, 0, len(slots))
	subjectIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		set.slots[slot.ID] = slot
		set.ids = append(set.ids, slot.ID)
		groupIDs = appendUnique(groupIDs, slot.GroupID)
		subjectIDs = appendUnique(subjectIDs, slot.SubjectID)
	}

	if set.groups, err = s.catalogRepo.GroupsByIDs(ctx, groupIDs); err != nil {
		return slotSet{}, dataAccess("lookup groups", err)
	}
	if set.subjects, err = s.catalogRepo.SubjectsByIDs(ctx, subjectIDs); err != nil {
		return slotSet{}, dataAccess("lookup subjects", err)
	}
	return set, nil
}

func (s *ReportServiceImpl) listEvents(ctx context.Context, set slotSet, role attendance.Role, start, end time.Time) ([]attendance.Event, error) {
	if len(set.ids) == 0 {
		return nil, nil
	}
	events, err := s.attendanceRepo.List(ctx, role, attendance.EventFilter{SlotIDs: set.ids, DateFrom: start, DateTo: end})
	if err != nil {
		return nil, dataAccess("list "+string(role)+" attendance", err)
	}
	return events, nil
}

// rowsFor joins one role log to the slot set. Events whose slot is gone are dropped.
func (s *ReportServiceImpl) rowsFor(ctx context.Context, set slotSet, role attendance.Role, start, end time.Time) ([]report.Row, error) {
	events, err := s.listEvents(ctx, set, role, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]report.Row, 0, len(events))
	for _, e := range events {
		slot, ok := set.slots[e.SlotID]
		if !ok {
			continue
		}
		rows = append(rows, report.Row{
			SlotID:      slot.ID,
			TeacherID:   slot.TeacherID,
			Date:        e.Date,
			Hour:        string(slot.Hour),
			SubjectName: set.subjectName(slot.SubjectID),
			GroupInfo:   set.groupInfo(slot.GroupID),
			Status:      e.Status,
			Role:        role,
		})
	}
	return rows, nil
}

func (set slotSet) subjectName(id int64) string {
	if sub, ok := set.subjects[id]; ok && sub.Name != "" {
		return sub.Name
	}
	return catalog.Unassigned
}

func (set slotSet) groupInfo(id int64) string {
	if g, ok := set.groups[id]; ok {
		return g.Descriptor()
	}
	return catalog.Unassigned
}

func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
