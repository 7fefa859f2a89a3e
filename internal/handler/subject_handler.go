package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/internal/service"
	"github.com/noah-isme/sms-portal/internal/view"
)

// SubjectHandler serves the subject and marks editor.
type SubjectHandler struct {
	students *service.StudentService
	roster   *service.RosterService
	logger   *zap.Logger
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(students *service.StudentService, roster *service.RosterService, logger *zap.Logger) *SubjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectHandler{students: students, roster: roster, logger: logger}
}

// Landing renders the student picker: the searchable roster with each row
// linking into that student's subject editor.
func (h *SubjectHandler) Landing(c *gin.Context) {
	ctrl := view.NewController(h.roster.Fetcher(sessionToken(c)), view.Config{}, h.logger)
	ctrl.Load(c.Request.Context(), listQuery(c))

	data := basePage(c, "Manage Subjects")
	data["Snapshot"] = ctrl.Snapshot()
	data["PageSizes"] = view.PageSizes
	c.HTML(http.StatusOK, "subjects_landing.tmpl", data)
}

// Editor renders one student's subject list with per-subject grades, the
// running average and overall result, plus the add row.
func (h *SubjectHandler) Editor(c *gin.Context) {
	h.renderEditor(c, c.Param("id"), "")
}

// Add appends a subject and re-renders the editor.
func (h *SubjectHandler) Add(c *gin.Context) {
	id := c.Param("id")
	form, student, ok := h.bindSubject(c, id)
	if !ok {
		return
	}

	if _, err := h.students.AddSubject(c.Request.Context(), sessionToken(c), id, student.Subjects, form); err != nil {
		h.renderEditor(c, id, errMessage(err, "Failed to add subject. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/manage-subjects/"+id)
}

// Update replaces the subject at the posted index and re-renders.
func (h *SubjectHandler) Update(c *gin.Context) {
	id := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Redirect(http.StatusFound, "/manage-subjects/"+id)
		return
	}
	form, student, ok := h.bindSubject(c, id)
	if !ok {
		return
	}

	if _, err := h.students.UpdateSubject(c.Request.Context(), sessionToken(c), id, student.Subjects, index, form); err != nil {
		h.renderEditor(c, id, errMessage(err, "Failed to update subject. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/manage-subjects/"+id)
}

// Remove deletes the subject at the posted index and re-renders.
func (h *SubjectHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Redirect(http.StatusFound, "/manage-subjects/"+id)
		return
	}
	student, err := h.students.Get(c.Request.Context(), sessionToken(c), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/manage-subjects")
		return
	}

	if _, err := h.students.RemoveSubject(c.Request.Context(), sessionToken(c), id, student.Subjects, index); err != nil {
		h.renderEditor(c, id, errMessage(err, "Failed to remove subject. Please try again."))
		return
	}
	c.Redirect(http.StatusFound, "/manage-subjects/"+id)
}

// bindSubject binds the posted subject row and loads the current record.
// On failure it renders the editor itself and reports false.
func (h *SubjectHandler) bindSubject(c *gin.Context, id string) (service.SubjectForm, *models.Student, bool) {
	var form service.SubjectForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEditor(c, id, "Please fill all fields")
		return form, nil, false
	}
	student, err := h.students.Get(c.Request.Context(), sessionToken(c), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/manage-subjects")
		return form, nil, false
	}
	return form, student, true
}

func (h *SubjectHandler) renderEditor(c *gin.Context, id, msg string) {
	student, err := h.students.Get(c.Request.Context(), sessionToken(c), id)
	if err != nil {
		h.logger.Warn("student lookup failed", zap.String("id", id), zap.Error(err))
		c.Redirect(http.StatusFound, "/manage-subjects")
		return
	}

	data := basePage(c, "Manage Subjects")
	data["Student"] = student
	if msg != "" {
		data["Error"] = msg
	}
	c.HTML(http.StatusOK, "subjects_editor.tmpl", data)
}
