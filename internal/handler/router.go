package handler

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/middleware"
	"github.com/noah-isme/sms-portal/internal/service"
	"github.com/noah-isme/sms-portal/internal/session"
	"github.com/noah-isme/sms-portal/pkg/logger"
	reqidmiddleware "github.com/noah-isme/sms-portal/pkg/middleware/requestid"
)

// Deps carries everything the route table needs.
type Deps struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Students  *StudentHandler
	Subjects  *SubjectHandler
	Profile   *ProfileHandler
	Sessions  *session.Manager
	Metrics   *service.MetricsService
	Templates *template.Template
	Static    fs.FS
	Logger    *zap.Logger
}

// Router builds the gin engine with all portal routes and middleware.
func Router(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.Sessions(d.Sessions))

	if d.Templates != nil {
		r.SetHTMLTemplate(d.Templates)
	}
	if d.Static != nil {
		r.StaticFS("/static", http.FS(d.Static))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// The landing route and unknown paths resolve by role.
	r.GET("/", roleLanding)
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	// Auth screens bounce signed-in visitors to their landing page.
	auth := r.Group("/", middleware.RedirectAuthenticated())
	{
		auth.GET("/admin-login", d.Auth.ShowAdminLogin)
		auth.POST("/admin-login", d.Auth.AdminLogin)
		auth.GET("/student-login", d.Auth.ShowStudentLogin)
		auth.POST("/student-login", d.Auth.StudentLogin)
		auth.GET("/student-register", d.Auth.ShowRegister)
		auth.POST("/student-register", d.Auth.Register)
	}
	r.POST("/logout", d.Auth.Logout)

	admin := r.Group("/", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", d.Dashboard.Dashboard)
		admin.GET("/dashboard/rows", d.Dashboard.Rows)
		admin.GET("/dashboard/export/csv", d.Dashboard.ExportCSV)
		admin.GET("/dashboard/export/pdf", d.Dashboard.ExportPDF)

		admin.GET("/add-student", d.Students.ShowAdd)
		admin.POST("/add-student", d.Students.Add)
		admin.GET("/edit-student/:id", d.Students.ShowEdit)
		admin.POST("/edit-student/:id", d.Students.Edit)
		admin.GET("/delete-student/:id", d.Students.ConfirmDelete)
		admin.POST("/delete-student/:id", d.Students.Delete)

		admin.GET("/manage-subjects", d.Subjects.Landing)
		admin.GET("/manage-subjects/:id", d.Subjects.Editor)
		admin.POST("/manage-subjects/:id/add", d.Subjects.Add)
		admin.POST("/manage-subjects/:id/update/:index", d.Subjects.Update)
		admin.POST("/manage-subjects/:id/remove/:index", d.Subjects.Remove)
	}

	// Any signed-in visitor may open the record view; only the profile
	// editor is student-only.
	r.GET("/student-view", middleware.RequireAuth(), d.Profile.View)

	student := r.Group("/", middleware.RequireStudent())
	{
		student.GET("/student-profile", d.Profile.ShowEdit)
		student.POST("/student-profile", d.Profile.Edit)
	}

	return r
}

// roleLanding sends each visitor to the page matching their session.
func roleLanding(c *gin.Context) {
	sess := currentSession(c)
	switch {
	case sess.Admin():
		c.Redirect(http.StatusFound, "/dashboard")
	case sess.Student():
		c.Redirect(http.StatusFound, "/student-view")
	default:
		c.Redirect(http.StatusFound, "/admin-login")
	}
}
