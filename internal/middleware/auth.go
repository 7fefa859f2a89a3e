package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-portal/internal/session"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// Sessions resolves the session cookie once per request and stashes the
// result. Guards and handlers read it via CurrentSession.
func Sessions(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := manager.Current(c); sess != nil {
			c.Set(ContextSessionKey, sess)
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by Sessions, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireAuth redirects anonymous visitors to the admin login page before
// any page data is requested.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusFound, "/admin-login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin keeps non-admin sessions out of management pages. A signed-in
// student lands back on their own view instead.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Authenticated() {
			c.Redirect(http.StatusFound, "/admin-login")
			c.Abort()
			return
		}
		if !sess.Admin() {
			c.Redirect(http.StatusFound, "/student-view")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStudent keeps admin sessions out of the student self-service pages.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Authenticated() {
			c.Redirect(http.StatusFound, "/student-login")
			c.Abort()
			return
		}
		if !sess.Student() {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectAuthenticated sends signed-in visitors away from the auth screens
// to their role's landing page.
func RedirectAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess.Authenticated() {
			if sess.Admin() {
				c.Redirect(http.StatusFound, "/dashboard")
			} else {
				c.Redirect(http.StatusFound, "/student-view")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
