// Package access holds the static role and route policies and the pure
// decision functions evaluated over them.
package access

import (
	"fmt"

	"github.com/stemsi/schoolhealth-backend/internal/model"
)

// rolePolicy is the single table granting permissions to roles. Adding a
// permission to the catalog requires an explicit decision here for every role:
// either list it under the roles that get it or add it to unassignedPermissions.
// admin is a literal list and is not derived from the other roles.
var rolePolicy = map[model.Role][]model.Permission{
	model.RoleAdmin: {
		model.PermissionManageUsers,
		model.PermissionManageSystem,
		model.PermissionViewAllReports,
		model.PermissionManageHealthRecords,
		model.PermissionConductHealthChecks,
		model.PermissionManageVaccinations,
		model.PermissionHandleMedicalEvents,
		model.PermissionApproveMedicines,
		model.PermissionViewMedicalReports,
		model.PermissionViewClassHealthStatus,
		model.PermissionReportHealthIncidents,
		model.PermissionViewStudentBasicHealth,
		model.PermissionViewDashboard,
		model.PermissionUpdateProfile,
	},
	model.RoleMedicalStaff: {
		model.PermissionManageHealthRecords,
		model.PermissionConductHealthChecks,
		model.PermissionManageVaccinations,
		model.PermissionHandleMedicalEvents,
		model.PermissionApproveMedicines,
		model.PermissionViewMedicalReports,
		model.PermissionViewClassHealthStatus,
		model.PermissionViewStudentBasicHealth,
		model.PermissionViewDashboard,
		model.PermissionUpdateProfile,
	},
	model.RoleParent: {
		model.PermissionViewOwnChildHealth,
		model.PermissionSubmitMedicineRequest,
		model.PermissionViewVaccinationSchedule,
		model.PermissionReceiveHealthNotifications,
		model.PermissionViewDashboard,
		model.PermissionUpdateProfile,
	},
	model.RoleTeacher: {
		model.PermissionViewClassHealthStatus,
		model.PermissionReportHealthIncidents,
		model.PermissionViewStudentBasicHealth,
		model.PermissionViewDashboard,
		model.PermissionUpdateProfile,
	},
}

// unassignedPermissions lists catalog members deliberately granted to no role.
var unassignedPermissions = map[model.Permission]struct{}{}

// roleSets is the membership index built from rolePolicy.
var roleSets map[model.Role]PermissionSet

func init() {
	if err := ValidatePolicy(); err != nil {
		panic(err)
	}
	roleSets = make(map[model.Role]PermissionSet, len(rolePolicy))
	for role, perms := range rolePolicy {
		roleSets[role] = NewPermissionSet(perms...)
	}
}

// ValidatePolicy checks that the role and route tables are complete and only
// reference catalog members.
func ValidatePolicy() error {
	if len(rolePolicy) != len(model.AllRoles) {
		return fmt.Errorf("role policy has %d roles, want %d", len(rolePolicy), len(model.AllRoles))
	}

	granted := make(map[model.Permission]struct{})
	for _, role := range model.AllRoles {
		perms, ok := rolePolicy[role]
		if !ok {
			return fmt.Errorf("role %q missing from role policy", role)
		}
		if len(perms) == 0 {
			return fmt.Errorf("role %q has no permissions", role)
		}
		for _, p := range perms {
			if !p.Valid() {
				return fmt.Errorf("role %q: %w", role, &model.PolicyGapError{Kind: model.GapPermission, Value: string(p)})
			}
			granted[p] = struct{}{}
		}
	}

	for _, p := range model.AllPermissions {
		_, isGranted := granted[p]
		_, isUnassigned := unassignedPermissions[p]
		if !isGranted && !isUnassigned {
			return fmt.Errorf("permission %q is neither granted to a role nor listed as unassigned", p)
		}
	}

	for path, perms := range routePolicy {
		if len(perms) == 0 {
			return fmt.Errorf("route %q maps to no permissions and is unreachable", path)
		}
		for _, p := range perms {
			if !p.Valid() {
				return fmt.Errorf("route %q: %w", path, &model.PolicyGapError{Kind: model.GapPermission, Value: string(p)})
			}
		}
	}
	return nil
}

// PermissionsFor returns the permissions granted to role.
// An unknown role yields a *model.PolicyGapError rather than an empty set.
func PermissionsFor(role model.Role) (PermissionSet, error) {
	set, ok := roleSets[role]
	if !ok {
		return nil, &model.PolicyGapError{Kind: model.GapRole, Value: string(role)}
	}
	return set.Clone(), nil
}

// RolePolicyTable returns a copy of the role → permission list table.
func RolePolicyTable() map[model.Role][]model.Permission {
	out := make(map[model.Role][]model.Permission, len(rolePolicy))
	for role, perms := range rolePolicy {
		out[role] = append([]model.Permission(nil), perms...)
	}
	return out
}
