package auth

// Role names carried in the access token "role" claim.
const (
	RoleSuperAdmin        = "SUPER_ADMIN"
	RoleHRAdmin           = "HR_ADMIN"
	RoleHRManager         = "HR_MANAGER"
	RoleDepartmentManager = "DEPARTMENT_MANAGER"
)

// AttendanceEditors may write attendance records and regenerate summaries.
var AttendanceEditors = []string{RoleSuperAdmin, RoleHRAdmin, RoleHRManager}

// AttendanceViewers may read any employee's computed attendance.
var AttendanceViewers = []string{RoleSuperAdmin, RoleHRAdmin, RoleHRManager, RoleDepartmentManager}
