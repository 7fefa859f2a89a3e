package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/service"
)

// ProfileHandler serves the student's own record view and profile editor.
type ProfileHandler struct {
	students *service.StudentService
	logger   *zap.Logger
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(students *service.StudentService, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{students: students, logger: logger}
}

// View renders the signed-in student's record with subjects, grades and the
// overall result.
func (h *ProfileHandler) View(c *gin.Context) {
	sess := currentSession(c)
	student, err := h.students.Get(c.Request.Context(), sess.Token, sess.User.ID)
	if err != nil {
		h.logger.Warn("own record lookup failed", zap.String("id", sess.User.ID), zap.Error(err))
		data := basePage(c, "My Results")
		data["Error"] = errMessage(err, "Could not load your record. Please try again.")
		c.HTML(http.StatusOK, "student_view.tmpl", data)
		return
	}

	data := basePage(c, "My Results")
	data["Student"] = student
	c.HTML(http.StatusOK, "student_view.tmpl", data)
}

// ShowEdit renders the profile editor pre-filled with the student's record.
func (h *ProfileHandler) ShowEdit(c *gin.Context) {
	sess := currentSession(c)
	student, err := h.students.Get(c.Request.Context(), sess.Token, sess.User.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/student-view")
		return
	}

	data := basePage(c, "My Profile")
	data["Form"] = service.ProfileForm{
		Name:       student.Name,
		Email:      student.Email,
		Phone:      student.Phone,
		Department: student.Department,
	}
	c.HTML(http.StatusOK, "student_profile.tmpl", data)
}

// Edit applies the student's self-edit and returns to their view.
func (h *ProfileHandler) Edit(c *gin.Context) {
	sess := currentSession(c)
	var form service.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEdit(c, form, "Please fill all required fields")
		return
	}

	if _, err := h.students.UpdateProfile(c.Request.Context(), sess.Token, sess.User.ID, form); err != nil {
		h.renderEdit(c, form, errMessage(err, "Failed to update profile. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/student-view")
}

func (h *ProfileHandler) renderEdit(c *gin.Context, form service.ProfileForm, msg string) {
	data := basePage(c, "My Profile")
	data["Error"] = msg
	data["Form"] = form
	c.HTML(http.StatusOK, "student_profile.tmpl", data)
}
