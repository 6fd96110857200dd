package user

type Permission string

const (
	// Schedule
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"

	// Attendance logs
	PermissionAttendanceRecord Permission = "attendance.record"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
	PermissionReportsRank   Permission = "reports.rank"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAttendanceRecord,
		PermissionReportsView,
		PermissionReportsExport,
		PermissionReportsRank,
	},
	RoleChecker: {
		PermissionScheduleView,
		PermissionAttendanceRecord,
		PermissionReportsView,
		PermissionReportsExport,
		PermissionReportsRank,
	},
	RoleTeacher: {
		PermissionScheduleView,
		PermissionAttendanceRecord,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleGroupLeader: {
		PermissionScheduleView,
		PermissionAttendanceRecord,
		PermissionReportsView,
	},
	RoleStudent: {
		PermissionScheduleView,
		PermissionReportsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
