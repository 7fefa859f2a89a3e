// Package session owns the browser session: the identity/token pair issued by
// the backend on login, stored server-side and referenced by an opaque cookie.
package session

import (
	"time"

	"github.com/noah-isme/sms-portal/internal/models"
)

// Session is one authenticated browser. Identity and token are always stored
// and cleared together; a record missing either is treated as absent.
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	CreatedAt time.Time   `json:"created_at"`
}

// Authenticated reports whether both identity and token are present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}

// Admin reports whether the session belongs to an admin or super admin.
func (s *Session) Admin() bool {
	return s.Authenticated() && s.User.Admin()
}

// Student reports whether the session belongs to a student.
func (s *Session) Student() bool {
	return s.Authenticated() && s.User.Role == models.RoleStudent
}
