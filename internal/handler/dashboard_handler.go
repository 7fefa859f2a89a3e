package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/service"
	"github.com/noah-isme/sms-portal/internal/view"
)

// DashboardHandler serves the admin roster listing and its downloads.
type DashboardHandler struct {
	roster *service.RosterService
	logger *zap.Logger
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(roster *service.RosterService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{roster: roster, logger: logger}
}

// listQuery reads page, limit and search from the URL. Missing or malformed
// values fall back so a hand-edited URL still renders.
func listQuery(c *gin.Context) view.Query {
	q := view.Query{Page: 1, Limit: view.DefaultPageSize}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(view.DefaultPageSize))); err == nil {
		q.Limit = limit
	}
	q.Search = strings.TrimSpace(c.Query("search"))
	return q
}

func (h *DashboardHandler) snapshot(c *gin.Context) view.Snapshot {
	ctrl := view.NewController(h.roster.Fetcher(sessionToken(c)), view.Config{}, h.logger)
	ctrl.Load(c.Request.Context(), listQuery(c))
	return ctrl.Snapshot()
}

// Dashboard renders the roster listing with stats cards, search box,
// page-size selector and numbered pagination.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	snap := h.snapshot(c)

	data := basePage(c, "Dashboard")
	data["Snapshot"] = snap
	data["PageSizes"] = view.PageSizes

	stats, err := h.roster.Stats(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.logger.Warn("roster stats unavailable", zap.Error(err))
	} else {
		data["Stats"] = stats
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", data)
}

// Rows renders only the table and pagination fragment. The page's script
// swaps it in as the user types or pages, debouncing keystrokes itself.
func (h *DashboardHandler) Rows(c *gin.Context) {
	snap := h.snapshot(c)

	data := gin.H{"Snapshot": snap, "PageSizes": view.PageSizes}
	c.HTML(http.StatusOK, "dashboard_rows.tmpl", data)
}

// ExportCSV streams the whole roster as a CSV download.
func (h *DashboardHandler) ExportCSV(c *gin.Context) {
	out, err := h.roster.ExportCSV(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
		c.String(http.StatusBadGateway, "Export failed. Please try again.")
		return
	}
	filename := "students-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// ExportPDF streams the whole roster as a PDF download.
func (h *DashboardHandler) ExportPDF(c *gin.Context) {
	out, err := h.roster.ExportPDF(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("pdf export failed", zap.Error(err))
		c.String(http.StatusBadGateway, "Export failed. Please try again.")
		return
	}
	filename := "students-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
