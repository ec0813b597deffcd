package access

import "github.com/stemsi/schoolhealth-backend/internal/model"

// CatalogEntry is one permission as shown on the "my permissions" page.
type CatalogEntry struct {
	Permission  model.Permission      `json:"permission"`
	Description string                `json:"description"`
	Group       model.PermissionGroup `json:"group"`
	Granted     bool                  `json:"granted"`
}

// RoleSummary is one row of the role table.
type RoleSummary struct {
	Role        model.Role         `json:"role"`
	Label       string             `json:"label"`
	Permissions []model.Permission `json:"permissions"`
}

// Catalog lists every permission in catalog order with Granted set for role.
// An unknown role gets the full catalog with nothing granted.
func Catalog(role model.Role) []CatalogEntry {
	granted := roleSets[role]
	out := make([]CatalogEntry, 0, len(model.AllPermissions))
	for _, p := range model.AllPermissions {
		desc, _ := model.Describe(p)
		group, _ := model.GroupOf(p)
		out = append(out, CatalogEntry{
			Permission:  p,
			Description: desc,
			Group:       group,
			Granted:     granted.Has(p),
		})
	}
	return out
}

// Roles summarizes the role policy in role order.
func Roles() []RoleSummary {
	out := make([]RoleSummary, 0, len(model.AllRoles))
	for _, role := range model.AllRoles {
		out = append(out, RoleSummary{
			Role:        role,
			Label:       role.Label(),
			Permissions: roleSets[role].Slice(),
		})
	}
	return out
}
