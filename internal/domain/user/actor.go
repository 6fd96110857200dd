package user

// Actor is the authenticated caller, passed explicitly into services so that
// scoping never depends on ambient request state.
type Actor struct {
	UserID  int64
	Role    Role
	GroupID *int64
}

// CanViewTeacher reports whether the actor may read attendance aggregates of a teacher.
func (a Actor) CanViewTeacher(teacherID int64) bool {
	switch a.Role {
	case RoleAdmin, RoleChecker:
		return true
	case RoleTeacher:
		return a.UserID == teacherID
	default:
		return false
	}
}

// CanViewGroup reports whether the actor may read attendance aggregates of a group.
func (a Actor) CanViewGroup(groupID int64) bool {
	switch a.Role {
	case RoleAdmin, RoleChecker:
		return true
	case RoleGroupLeader, RoleStudent:
		return a.GroupID != nil && *a.GroupID == groupID
	default:
		return false
	}
}

// CanViewAll reports whether the actor may read aggregates across every teacher and group.
func (a Actor) CanViewAll() bool {
	return a.Role == RoleAdmin || a.Role == RoleChecker
}
