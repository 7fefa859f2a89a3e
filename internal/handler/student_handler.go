package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/internal/service"
)

// StudentHandler serves the admin add/edit/delete student pages.
type StudentHandler struct {
	students *service.StudentService
	logger   *zap.Logger
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, logger *zap.Logger) *StudentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentHandler{students: students, logger: logger}
}

// ShowAdd renders the empty add-student form.
func (h *StudentHandler) ShowAdd(c *gin.Context) {
	data := basePage(c, "Add Student")
	data["Form"] = service.StudentForm{}
	c.HTML(http.StatusOK, "student_form.tmpl", data)
}

// Add handles the add-student form post.
func (h *StudentHandler) Add(c *gin.Context) {
	var form service.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "Add Student", "", form, "Please fill all required fields")
		return
	}

	if _, err := h.students.Create(c.Request.Context(), sessionToken(c), form); err != nil {
		h.renderForm(c, "Add Student", "", form, errMessage(err, "Failed to add student. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// ShowEdit renders the edit form pre-filled from the backend record.
func (h *StudentHandler) ShowEdit(c *gin.Context) {
	id := c.Param("id")
	student, err := h.students.Get(c.Request.Context(), sessionToken(c), id)
	if err != nil {
		h.logger.Warn("student lookup failed", zap.String("id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	data := basePage(c, "Edit Student")
	data["StudentID"] = id
	data["Form"] = service.StudentForm{
		Name:       student.Name,
		Email:      student.Email,
		RegNo:      student.RegNo,
		Gender:     student.Gender,
		Phone:      student.Phone,
		Department: student.Department,
	}
	c.HTML(http.StatusOK, "student_form.tmpl", data)
}

// Edit handles the edit-student form post. A blank password keeps the
// stored one.
func (h *StudentHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	var form service.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "Edit Student", id, form, "Please fill all required fields")
		return
	}

	if _, err := h.students.Update(c.Request.Context(), sessionToken(c), id, form); err != nil {
		h.renderForm(c, "Edit Student", id, form, errMessage(err, "Failed to update student. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *StudentHandler) renderForm(c *gin.Context, title, id string, form service.StudentForm, msg string) {
	data := basePage(c, title)
	data["Error"] = msg
	data["Form"] = form
	if id != "" {
		data["StudentID"] = id
	}
	c.HTML(http.StatusOK, "student_form.tmpl", data)
}

// listingURL rebuilds the dashboard URL with the caller's listing query so
// the listing refetches the same page, size and search after the flow ends.
func listingURL(c *gin.Context) string {
	if raw := c.Request.URL.RawQuery; raw != "" {
		return "/dashboard?" + raw
	}
	return "/dashboard"
}

// confirmURL keeps the listing query on the confirmation form's action.
func confirmURL(c *gin.Context, id string) string {
	target := "/delete-student/" + id
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}
	return target
}

// ConfirmDelete renders the confirmation page. No delete request is made
// until the admin confirms; declining returns to the unchanged listing page.
func (h *StudentHandler) ConfirmDelete(c *gin.Context) {
	id := c.Param("id")
	student, err := h.students.Get(c.Request.Context(), sessionToken(c), id)
	if err != nil {
		h.logger.Warn("student lookup failed", zap.String("id", id), zap.Error(err))
		c.Redirect(http.StatusFound, listingURL(c))
		return
	}

	data := basePage(c, "Delete Student")
	data["Student"] = student
	data["ConfirmURL"] = confirmURL(c, id)
	data["CancelURL"] = listingURL(c)
	c.HTML(http.StatusOK, "student_delete.tmpl", data)
}

// Delete performs the confirmed deletion and returns to the listing page the
// admin was on.
func (h *StudentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.students.Delete(c.Request.Context(), sessionToken(c), id); err != nil {
		h.logger.Error("delete failed", zap.String("id", id), zap.Error(err))
		data := basePage(c, "Delete Student")
		data["Error"] = errMessage(err, "Failed to delete student. Please try again.")
		data["Student"] = &models.Student{ID: id}
		data["ConfirmURL"] = confirmURL(c, id)
		data["CancelURL"] = listingURL(c)
		c.HTML(http.StatusOK, "student_delete.tmpl", data)
		return
	}
	c.Redirect(http.StatusFound, listingURL(c))
}
