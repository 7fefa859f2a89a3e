package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-portal/internal/middleware"
	"github.com/noah-isme/sms-portal/internal/session"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

// currentSession returns the session the middleware resolved, or nil.
func currentSession(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}

// sessionToken returns the backend token for the current session. Guarded
// routes always have one.
func sessionToken(c *gin.Context) string {
	if sess := currentSession(c); sess != nil {
		return sess.Token
	}
	return ""
}

// errMessage extracts the user-facing message from any error, with a
// fallback used when the error carries none.
func errMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := appErrors.FromError(err).Message
	if msg == "" {
		return fallback
	}
	return msg
}

// basePage builds the template data every page shares.
func basePage(c *gin.Context, title string) gin.H {
	data := gin.H{"Title": title}
	if sess := currentSession(c); sess != nil {
		data["User"] = sess.User
	}
	return data
}
