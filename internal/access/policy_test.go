package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

func TestValidatePolicy_CurrentTablesAreComplete(t *testing.T) {
	require.NoError(t, ValidatePolicy())
}

func TestValidatePolicy_RejectsEmptyRole(t *testing.T) {
	saved := rolePolicy[model.RoleTeacher]
	rolePolicy[model.RoleTeacher] = nil
	t.Cleanup(func() { rolePolicy[model.RoleTeacher] = saved })

	err := ValidatePolicy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teacher")
}

func TestValidatePolicy_RejectsMissingRole(t *testing.T) {
	saved := rolePolicy[model.RoleParent]
	delete(rolePolicy, model.RoleParent)
	t.Cleanup(func() { rolePolicy[model.RoleParent] = saved })

	assert.Error(t, ValidatePolicy())
}

func TestValidatePolicy_RejectsUnknownPermission(t *testing.T) {
	saved := rolePolicy[model.RoleTeacher]
	rolePolicy[model.RoleTeacher] = append(append([]model.Permission(nil), saved...), model.Permission("teleport"))
	t.Cleanup(func() { rolePolicy[model.RoleTeacher] = saved })

	err := ValidatePolicy()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPolicyGap)
}

func TestValidatePolicy_RejectsUndecidedPermission(t *testing.T) {
	saved := rolePolicy[model.RoleParent]
	var trimmed []model.Permission
	for _, p := range saved {
		if p != model.PermissionReceiveHealthNotifications {
			trimmed = append(trimmed, p)
		}
	}
	rolePolicy[model.RoleParent] = trimmed
	t.Cleanup(func() { rolePolicy[model.RoleParent] = saved })

	err := ValidatePolicy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(model.PermissionReceiveHealthNotifications))

	unassignedPermissions[model.PermissionReceiveHealthNotifications] = struct{}{}
	t.Cleanup(func() { delete(unassignedPermissions, model.PermissionReceiveHealthNotifications) })
	assert.NoError(t, ValidatePolicy())
}

func TestValidatePolicy_RejectsUnknownRoutePermission(t *testing.T) {
	routePolicy["/bogus"] = []model.Permission{"bogus"}
	t.Cleanup(func() { delete(routePolicy, "/bogus") })

	assert.ErrorIs(t, ValidatePolicy(), model.ErrPolicyGap)
}

func TestRolePolicyTable_IsCopy(t *testing.T) {
	table := RolePolicyTable()
	table[model.RoleTeacher][0] = model.PermissionManageSystem

	assert.Equal(t, model.PermissionViewClassHealthStatus, rolePolicy[model.RoleTeacher][0])
}

func TestRequiredPermissions(t *testing.T) {
	perms, ok := RequiredPermissions(RouteStudentHealth)
	require.True(t, ok)
	assert.Equal(t, []model.Permission{model.PermissionManageHealthRecords, model.PermissionViewOwnChildHealth}, perms)

	perms, ok = RequiredPermissions("/nowhere")
	assert.False(t, ok)
	assert.Nil(t, perms)
}

func TestPermissionSet_SliceFollowsCatalogOrder(t *testing.T) {
	set := NewPermissionSet(model.PermissionUpdateProfile, model.PermissionManageUsers)
	assert.Equal(t, []model.Permission{model.PermissionManageUsers, model.PermissionUpdateProfile}, set.Slice())
}

func TestValidatePolicy_RejectsEmptyRoute(t *testing.T) {
	routePolicy["/locked"] = []model.Permission{}
	t.Cleanup(func() { delete(routePolicy, "/locked") })

	err := ValidatePolicy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/locked")
}
