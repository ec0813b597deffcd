package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// HasPermission reports whether role holds p. Unknown roles hold nothing; use
// CheckPermission at input boundaries to surface them as errors instead.
func HasPermission(role model.Role, p model.Permission) bool {
	return roleSets[role].Has(p)
}

// HasAnyPermission reports whether role holds at least one of perms.
// An empty list is never satisfied.
func HasAnyPermission(role model.Role, perms []model.Permission) bool {
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether role holds every one of perms.
// An empty list is always satisfied.
func HasAllPermissions(role model.Role, perms []model.Permission) bool {
	for _, p := range perms {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

// CanAccessRoute reports whether role may open path. Unmapped paths are
// allowed; a path mapped to an empty list is reachable by nobody.
func CanAccessRoute(role model.Role, path string) bool {
	perms, ok := routePolicy[path]
	if !ok {
		return true
	}
	return HasAnyPermission(role, perms)
}

// CheckPermission is HasPermission with validation of both inputs.
func CheckPermission(role model.Role, p model.Permission) (bool, error) {
	set, err := PermissionsFor(role)
	if err != nil {
		return false, err
	}
	if !p.Valid() {
		return false, &model.PolicyGapError{Kind: model.GapPermission, Value: string(p)}
	}
	return set.Has(p), nil
}
