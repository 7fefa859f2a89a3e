package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/service"
	"github.com/noah-isme/sms-portal/internal/session"
)

// slowAdvisory is shown on the auth screens while the backend responds
// slower than the configured threshold. Free-tier hosts sleep when idle.
const slowAdvisory = "The server may take a moment to wake up. Please be patient."

type slownessReporter interface {
	Slow() bool
}

// AuthHandler serves the login and registration screens and their form posts.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	monitor  slownessReporter
	logger   *zap.Logger
}

// NewAuthHandler constructs AuthHandler. monitor may be nil.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, monitor slownessReporter, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, sessions: sessions, monitor: monitor, logger: logger}
}

func (h *AuthHandler) authPage(c *gin.Context, title string) gin.H {
	data := basePage(c, title)
	if h.monitor != nil && h.monitor.Slow() {
		data["Advisory"] = slowAdvisory
	}
	return data
}

// ShowAdminLogin renders the admin login screen.
func (h *AuthHandler) ShowAdminLogin(c *gin.Context) {
	h.renderAdminLogin(c, service.AdminLoginForm{}, "")
}

// AdminLogin handles the admin login form post.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var form service.AdminLoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAdminLogin(c, form, "Please fill all required fields")
		return
	}

	resp, err := h.auth.AdminLogin(c.Request.Context(), form)
	if err != nil {
		h.renderAdminLogin(c, form, errMessage(err, "Login failed. Please try again."))
		return
	}
	if err := h.sessions.Login(c, resp.User, resp.Token); err != nil {
		h.logger.Error("failed to establish session", zap.Error(err))
		h.renderAdminLogin(c, form, "Login failed. Please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) renderAdminLogin(c *gin.Context, form service.AdminLoginForm, msg string) {
	data := h.authPage(c, "Admin Login")
	data["Error"] = msg
	data["Email"] = form.Email
	c.HTML(http.StatusOK, "admin_login.tmpl", data)
}

// ShowStudentLogin renders the student login screen.
func (h *AuthHandler) ShowStudentLogin(c *gin.Context) {
	h.renderStudentLogin(c, service.StudentLoginForm{}, "")
}

// StudentLogin handles the student login form post.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var form service.StudentLoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderStudentLogin(c, form, "Please fill all required fields")
		return
	}

	resp, err := h.auth.StudentLogin(c.Request.Context(), form)
	if err != nil {
		h.renderStudentLogin(c, form, errMessage(err, "Login failed. Please try again."))
		return
	}
	if err := h.sessions.Login(c, resp.User, resp.Token); err != nil {
		h.logger.Error("failed to establish session", zap.Error(err))
		h.renderStudentLogin(c, form, "Login failed. Please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/student-view")
}

func (h *AuthHandler) renderStudentLogin(c *gin.Context, form service.StudentLoginForm, msg string) {
	data := h.authPage(c, "Student Login")
	data["Error"] = msg
	data["RegNo"] = form.RegNo
	c.HTML(http.StatusOK, "student_login.tmpl", data)
}

// ShowRegister renders the student registration screen.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.renderRegister(c, service.RegisterForm{}, "")
}

// Register handles the registration form post. A successful registration
// signs the student straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form service.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegister(c, form, "Please fill all required fields")
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		h.renderRegister(c, form, errMessage(err, "Registration failed. Please try again."))
		return
	}
	if err := h.sessions.Login(c, resp.User, resp.Token); err != nil {
		h.logger.Error("failed to establish session", zap.Error(err))
		c.Redirect(http.StatusFound, "/student-login")
		return
	}
	c.Redirect(http.StatusFound, "/student-view")
}

func (h *AuthHandler) renderRegister(c *gin.Context, form service.RegisterForm, msg string) {
	data := h.authPage(c, "Student Registration")
	data["Error"] = msg
	data["Form"] = form
	c.HTML(http.StatusOK, "student_register.tmpl", data)
}

// Logout clears the session and returns the visitor to the matching login
// screen for their former role.
func (h *AuthHandler) Logout(c *gin.Context) {
	target := "/admin-login"
	if sess := currentSession(c); sess.Student() {
		target = "/student-login"
	}
	h.sessions.Logout(c)
	c.Redirect(http.StatusFound, target)
}
