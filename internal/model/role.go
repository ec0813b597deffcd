package model

// Role is a class of user with a fixed permission set.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleMedicalStaff Role = "medical_staff"
	RoleParent       Role = "parent"
	RoleTeacher      Role = "teacher"
)

// AllRoles is the closed set of roles.
var AllRoles = []Role{
	RoleAdmin,
	RoleMedicalStaff,
	RoleParent,
	RoleTeacher,
}

var roleLabels = map[Role]string{
	RoleAdmin:        "Quản trị viên",
	RoleMedicalStaff: "Nhân viên Y tế",
	RoleParent:       "Phụ huynh",
	RoleTeacher:      "Giáo viên",
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the display name of the role.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return "Người dùng"
}

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", &PolicyGapError{Kind: GapRole, Value: s}
	}
	return r, nil
}
