package user

type Permission string

const (
	// Payroll records, recurring deductions, insurance, maternity
	PermissionRecordsView    Permission = "records.view"
	PermissionRecordsCreate  Permission = "records.create"
	PermissionRecordsUpdate  Permission = "records.update"
	PermissionRecordsDelete  Permission = "records.delete"
	PermissionRecordsArchive Permission = "records.archive"

	// Employee Management
	PermissionEmployeesView   Permission = "employees.view"
	PermissionEmployeesManage Permission = "employees.manage"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionExportsCreate Permission = "exports.create"

	// Audit
	PermissionActivityView Permission = "activity.view"

	// User Management
	PermissionUsersManage Permission = "users.manage"
)

var viewerPermissions = []Permission{
	PermissionRecordsView,
	PermissionEmployeesView,
	PermissionReportsView,
}

var payrollOfficerPermissions = append(append([]Permission{}, viewerPermissions...),
	PermissionRecordsCreate,
	PermissionRecordsUpdate,
	PermissionExportsCreate,
)

var hrManagerPermissions = append(append([]Permission{}, payrollOfficerPermissions...),
	PermissionRecordsDelete,
	PermissionRecordsArchive,
	PermissionEmployeesManage,
	PermissionActivityView,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:          append(append([]Permission{}, hrManagerPermissions...), PermissionUsersManage),
	RoleHRManager:      hrManagerPermissions,
	RolePayrollOfficer: payrollOfficerPermissions,
	RoleViewer:         viewerPermissions,
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
