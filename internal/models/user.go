package models

// UserRole encodes the role carried by an authenticated identity.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
	RoleStudent    UserRole = "student"
)

// User is the authenticated identity returned by the backend on login.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	RegNo string   `json:"regNo,omitempty"`
	Role  UserRole `json:"role"`
}

// Admin reports whether the user holds an administrative role.
func (u *User) Admin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleSuperAdmin)
}
