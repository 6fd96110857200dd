package attendance

import (
	"strings"
	"time"
)

// Role identifies which of the three independent attendance logs an event lives in.
type Role string

const (
	RoleTeacher     Role = "teacher"
	RoleGroupLeader Role = "group_leader"
	RoleChecker     Role = "checker"
)

// Roles lists the logs in report order.
var Roles = []Role{RoleTeacher, RoleGroupLeader, RoleChecker}

var RoleValues = []string{string(RoleTeacher), string(RoleGroupLeader), string(RoleChecker)}

func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RoleGroupLeader, RoleChecker:
		return true
	}
	return false
}

// Label is the human readable log name used in reports.
func (r Role) Label() string {
	switch r {
	case RoleTeacher:
		return "Teacher"
	case RoleGroupLeader:
		return "Group leader"
	case RoleChecker:
		return "Checker"
	}
	return string(r)
}

// ParseRole accepts the canonical values plus the path aliases used by the dashboards.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teacher", "maestro":
		return RoleTeacher, true
	case "group_leader", "group-leader", "jefe":
		return RoleGroupLeader, true
	case "checker", "checador":
		return RoleChecker, true
	}
	return "", false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

var StatusValues = []string{string(StatusPending), string(StatusPresent), string(StatusAbsent)}

// ParseStatus folds a recorded status string to its canonical value. Unknown
// strings come back lowercased with ok=false; they still count toward totals.
func ParseStatus(s string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "present", "presente", "asistió", "asistio":
		return StatusPresent, true
	case "absent", "ausente", "falta":
		return StatusAbsent, true
	case "pending", "pendiente", "":
		return StatusPending, true
	}
	return Status(v), false
}

// Event is one attendance observation in a single role log.
type Event struct {
	ID        int64
	SlotID    int64
	Date      time.Time
	Status    Status
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOnly truncates t to midnight UTC so that events key on calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
