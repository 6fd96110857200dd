package report

import (
	"context"
	"sort"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/catalog"
	"github.com/escuela-horarios/attendance-backend/internal/domain/report"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
)

type teacherRole struct {
	teacherID int64
	role      attendance.Role
}

type tally struct {
	subjects map[string]struct{}
	statuses []attendance.Status
}

func (t *tally) add(subject string, status attendance.Status) {
	if t.subjects == nil {
		t.subjects = make(map[string]struct{})
	}
	t.subjects[subject] = struct{}{}
	t.statuses = append(t.statuses, status)
}

func (t *tally) subjectList() []string {
	list := make([]string, 0, len(t.subjects))
	for name := range t.subjects {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// FetchByGroupAndRange implements report.ReportService.
func (s *ReportServiceImpl) FetchByGroupAndRange(ctx context.Context, actor user.Actor, req report.GroupRangeRequest) ([]report.RoleStatistics, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanViewGroup(req.GroupID) {
		return nil, report.ErrForbiddenScope
	}

	set, err := s.loadSlots(ctx, schedule.SlotFilter{GroupID: &req.GroupID})
	if err != nil {
		return nil, err
	}

	tallies := make(map[teacherRole]*tally)
	for _, role := range attendance.Roles {
		events, err := s.listEvents(ctx, set, role, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			slot, ok := set.slots[e.SlotID]
			if !ok {
				continue
			}
			key := teacherRole{teacherID: slot.TeacherID, role: role}
			t, ok := tallies[key]
			if !ok {
				t = &tally{}
				tallies[key] = t
			}
			t.add(set.subjectName(slot.SubjectID), e.Status)
		}
	}

	teacherIDs := make([]int64, 0, len(tallies))
	for key := range tallies {
		teacherIDs = appendUnique(teacherIDs, key.teacherID)
	}
	teachers, err := s.catalogRepo.TeachersByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, dataAccess("lookup teachers", err)
	}

	result := make([]report.RoleStatistics, 0, len(tallies))
	for key, t := range tallies {
		result = append(result, report.RoleStatistics{
			TeacherID:   key.teacherID,
			TeacherName: teacherName(teachers, key.teacherID),
			Role:        key.role,
			Subjects:    t.subjectList(),
			Stats:       report.ComputeStats(t.statuses),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.TeacherName != b.TeacherName {
			return a.TeacherName < b.TeacherName
		}
		if a.TeacherID != b.TeacherID {
			return a.TeacherID < b.TeacherID
		}
		return roleIndex(a.Role) < roleIndex(b.Role)
	})

	return result, nil
}

// TeacherRanking implements report.ReportService.
func (s *ReportServiceImpl) TeacherRanking(ctx context.Context, actor user.Actor, req report.RankingRequest) ([]report.RoleStatistics, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !actor.CanViewAll() {
		return nil, report.ErrForbiddenScope
	}

	set, err := s.loadSlots(ctx, schedule.SlotFilter{})
	if err != nil {
		return nil, err
	}

	tallies := make(map[int64]*tally)
	teacherIDs := make([]int64, 0)
	for _, id := range set.ids {
		slot := set.slots[id]
		if _, ok := tallies[slot.TeacherID]; !ok {
			tallies[slot.TeacherID] = &tally{subjects: make(map[string]struct{})}
			teacherIDs = append(teacherIDs, slot.TeacherID)
		}
		tallies[slot.TeacherID].subjects[set.subjectName(slot.SubjectID)] = struct{}{}
	}

	events, err := s.listEvents(ctx, set, req.ParsedRole, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if slot, ok := set.slots[e.SlotID]; ok {
			tallies[slot.TeacherID].statuses = append(tallies[slot.TeacherID].statuses, e.Status)
		}
	}

	teachers, err := s.catalogRepo.TeachersByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, dataAccess("lookup teachers", err)
	}

	result := make([]report.RoleStatistics, 0, len(teacherIDs))
	for _, id := range teacherIDs {
		t := tallies[id]
		result = append(result, report.RoleStatistics{
			TeacherID:   id,
			TeacherName: teacherName(teachers, id),
			Role:        req.ParsedRole,
			Subjects:    t.subjectList(),
			Stats:       report.ComputeStats(t.statuses),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.TeacherName != b.TeacherName {
			return a.TeacherName < b.TeacherName
		}
		return a.TeacherID < b.TeacherID
	})

	return result, nil
}

func teacherName(teachers map[int64]catalog.Teacher, id int64) string {
	if t, ok := teachers[id]; ok && t.Name != "" {
		return t.Name
	}
	return catalog.Unassigned
}

func roleIndex(r attendance.Role) int {
	for i, role := range attendance.Roles {
		if role == r {
			return i
		}
	}
	return len(attendance.Roles)
}
