package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// PermissionSet is a membership-only set of permissions.
type PermissionSet map[model.Permission]struct{}

// NewPermissionSet builds a set from perms.
func NewPermissionSet(perms ...model.Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p model.Permission) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of permissions in the set.
func (s PermissionSet) Len() int { return len(s) }

// Clone returns an independent copy.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// Slice returns the members in catalog order.
func (s PermissionSet) Slice() []model.Permission {
	out := make([]model.Permission, 0, len(s))
	for _, p := range model.AllPermissions {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
