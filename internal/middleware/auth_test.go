package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/internal/session"
	"github.com/noah-isme/sms-portal/pkg/config"
)

const testCookie = "portal_session"

func newGuardedRouter(t *testing.T, role models.UserRole, guard gin.HandlerFunc) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore()
	manager := session.NewManager(store, config.SessionConfig{CookieName: testCookie, TTL: time.Hour}, nil)

	cookieValue := ""
	if role != "" {
		sess := &session.Session{
			ID:        "sess-1",
			User:      models.User{ID: "u1", Name: "Test", Role: role},
			Token:     "opaque-token",
			CreatedAt: time.Now(),
		}
		if err := store.Put(context.Background(), sess, time.Hour); err != nil {
			t.Fatal(err)
		}
		cookieValue = sess.ID
	}

	r := gin.New()
	r.Use(Sessions(manager))
	r.GET("/protected", guard, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r, cookieValue
}

func request(r *gin.Engine, cookieValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: cookieValue})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r, _ := newGuardedRouter(t, "", RequireAuth())

	w := request(r, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin-login", w.Header().Get("Location"))
}

func TestRequireAuthPassesSignedIn(t *testing.T) {
	r, cookie := newGuardedRouter(t, models.RoleAdmin, RequireAuth())

	w := request(r, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRedirectsStudent(t *testing.T) {
	r, cookie := newGuardedRouter(t, models.RoleStudent, RequireAdmin())

	w := request(r, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/student-view", w.Header().Get("Location"))
}

func TestRequireAdminPassesSuperAdmin(t *testing.T) {
	r, cookie := newGuardedRouter(t, models.RoleSuperAdmin, RequireAdmin())

	w := request(r, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireStudentRedirectsAdmin(t *testing.T) {
	r, cookie := newGuardedRouter(t, models.RoleAdmin, RequireStudent())

	w := request(r, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRedirectAuthenticatedSendsAdminToDashboard(t *testing.T) {
	r, cookie := newGuardedRouter(t, models.RoleAdmin, RedirectAuthenticated())

	w := request(r, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRedirectAuthenticatedLeavesAnonymousAlone(t *testing.T) {
	r, _ := newGuardedRouter(t, "", RedirectAuthenticated())

	w := request(r, "")

	assert.Equal(t, http.StatusOK, w.Code)
}
