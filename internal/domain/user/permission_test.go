package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       Role
		permission Permission
		want       bool
	}{
		{RoleViewer, PermissionRecordsView, true},
		{RoleViewer, PermissionRecordsCreate, false},
		{RolePayrollOfficer, PermissionRecordsCreate, true},
		{RolePayrollOfficer, PermissionExportsCreate, true},
		{RolePayrollOfficer, PermissionRecordsDelete, false},
		{RoleHRManager, PermissionRecordsArchive, true},
		{RoleHRManager, PermissionActivityView, true},
		{RoleHRManager, PermissionUsersManage, false},
		{RoleAdmin, PermissionUsersManage, true},
		{RoleAdmin, PermissionRecordsView, true},
		{Role("Guest"), PermissionRecordsView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.permission), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.permission))
		})
	}
}

func TestRolePermissions_AreCumulative(t *testing.T) {
	for _, p := range RolePermissions[RoleViewer] {
		assert.True(t, HasPermission(RolePayrollOfficer, p), "payroll officer lacks %s", p)
	}
	for _, p := range RolePermissions[RolePayrollOfficer] {
		assert.True(t, HasPermission(RoleHRManager, p), "hr manager lacks %s", p)
	}
	for _, p := range RolePermissions[RoleHRManager] {
		assert.True(t, HasPermission(RoleAdmin, p), "admin lacks %s", p)
	}
}
