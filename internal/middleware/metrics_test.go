package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-portal/internal/service"
)

func newMeteredRouter(svc *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(svc))
	r.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(svc.Handler()))
	return r
}

func scrape(r *gin.Engine) string {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestMetricsObservesHandledRequests(t *testing.T) {
	svc := service.NewMetricsService()
	r := newMeteredRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, scrape(r), `path="/dashboard"`)
}

func TestMetricsSkipsExpositionEndpoint(t *testing.T) {
	svc := service.NewMetricsService()
	r := newMeteredRouter(svc)

	scrape(r)

	assert.NotContains(t, scrape(r), `path="/metrics"`)
}

func TestMetricsNilServicePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
