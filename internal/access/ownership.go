package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// Owned is a record attributed to a single owning identity.
type Owned interface {
	OwnerID() string
}

// CanViewRecord applies the ownership check on top of permissions:
// managePerm sees every record, ownPerm only records owned by the identity.
func CanViewRecord(identity *model.Identity, record Owned, managePerm, ownPerm model.Permission) bool {
	if identity == nil {
		return false
	}
	if HasPermission(identity.Role, managePerm) {
		return true
	}
	return HasPermission(identity.Role, ownPerm) && record.OwnerID() == identity.ID
}

// FilterVisible keeps the records identity may see under CanViewRecord.
func FilterVisible[T Owned](identity *model.Identity, records []T, managePerm, ownPerm model.Permission) []T {
	out := make([]T, 0, len(records))
	if identity == nil {
		return out
	}
	if HasPermission(identity.Role, managePerm) {
		return append(out, records...)
	}
	if !HasPermission(identity.Role, ownPerm) {
		return out
	}
	for _, r := range records {
		if r.OwnerID() == identity.ID {
			out = append(out, r)
		}
	}
	return out
}
