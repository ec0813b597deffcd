package model

// Identity is the authenticated actor bound to a session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token       string       `json:"token"`
	User        Identity     `json:"user"`
	RoleLabel   string       `json:"role_label"`
	Permissions []Permission `json:"permissions"`
}

// AccessCheckRequest asks whether the current session holds a permission list.
type AccessCheckRequest struct {
	Permissions []string `json:"permissions" binding:"required,dive,permission"`
	Mode        string   `json:"mode" binding:"omitempty,oneof=any all"`
}
