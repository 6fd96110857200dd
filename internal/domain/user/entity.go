package user

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"        // Administrator - manages catalog and schedule
	RoleStudent     Role = "student"      // Student - views own group schedule
	RoleGroupLeader Role = "group_leader" // Student who records attendance for their group
	RoleChecker     Role = "checker"      // Attendance auditor
	RoleTeacher     Role = "teacher"      // Teacher - records own attendance
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleStudent),
	string(RoleGroupLeader),
	string(RoleChecker),
	string(RoleTeacher),
}

type User struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	AccountNumber *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join: group led by (group leader) or enrolled in (student)
	GroupID *int64
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTeacher checks if user teaches classes
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
