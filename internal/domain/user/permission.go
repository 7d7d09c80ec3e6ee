package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Leave Management
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLeaveViewTeam Permission = "leave.view_team"
	PermissionLeaveProcess  Permission = "leave.process"

	// Absence Management
	PermissionAbsenceDeclare Permission = "absence.declare"
	PermissionAbsenceJustify Permission = "absence.justify"
	PermissionAbsenceProcess Permission = "absence.process"

	// Attendance Management
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Announcements
	PermissionAnnouncementPublish Permission = "announcement.publish"

	// Administration
	PermissionUserManage    Permission = "user.manage"
	PermissionAuditLogsView Permission = "audit_logs.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdminRH: {
		// HR administrators have all permissions
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewTeam,
		PermissionLeaveProcess,
		PermissionAbsenceDeclare,
		PermissionAbsenceJustify,
		PermissionAbsenceProcess,
		PermissionAttendanceRecord,
		PermissionAttendanceViewAll,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionAnnouncementPublish,
		PermissionUserManage,
		PermissionAuditLogsView,
	},
	RoleManager: {
		// Managers handle their direct reports
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewTeam,
		PermissionLeaveProcess,
		PermissionAbsenceDeclare,
		PermissionAbsenceJustify,
		PermissionAbsenceProcess,
		PermissionAttendanceRecord,
		PermissionAttendanceViewAll,
		PermissionEmployeeViewAll,
		PermissionAnnouncementPublish,
	},
	RoleEmployee: {
		// Employees act on their own records only
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAbsenceJustify,
		PermissionAttendanceRecord,
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
