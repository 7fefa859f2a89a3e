package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/pkg/config"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	raw, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return raw
}

func TestLoginStoresPairAndSetsCookie(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, config.SessionConfig{CookieName: "sid", TTL: time.Hour}, nil)

	c, rec := testContext(t)
	user := models.User{ID: "u1", Name: "Admin", Role: models.RoleAdmin}
	require.NoError(t, mgr.Login(c, user, "tok"))

	ck := sessionCookie(t, rec, "sid")
	require.NotNil(t, ck)
	require.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)

	s, err := store.Get(c.Request.Context(), ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, user, s.User)
}

func TestLoginRejectsIncompletePair(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), config.SessionConfig{}, nil)

	c, _ := testContext(t)
	assert.Error(t, mgr.Login(c, models.User{ID: "u1"}, ""))
	assert.Error(t, mgr.Login(c, models.User{}, "tok"))
}

func TestLogoutClearsRecordAndCookie(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, config.SessionConfig{CookieName: "sid", TTL: time.Hour}, nil)

	c, rec := testContext(t)
	require.NoError(t, mgr.Login(c, models.User{ID: "u1", Role: models.RoleStudent}, "tok"))
	id := sessionCookie(t, rec, "sid").Value

	c2, rec2 := testContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: "sid", Value: id})
	mgr.Logout(c2)

	_, err := store.Get(c2.Request.Context(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	cleared := sessionCookie(t, rec2, "sid")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	c3, _ := testContext(t)
	c3.Request.AddCookie(&http.Cookie{Name: "sid", Value: id})
	s := mgr.Current(c3)
	assert.False(t, s.Authenticated())
	assert.False(t, s.Admin())
}

func TestCurrentWithoutCookie(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), config.SessionConfig{CookieName: "sid"}, nil)
	c, _ := testContext(t)
	assert.Nil(t, mgr.Current(c))
}

func TestCurrentDropsExpiredToken(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, config.SessionConfig{CookieName: "sid", TTL: time.Hour}, nil)

	c, rec := testContext(t)
	expired := signedToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, mgr.Login(c, models.User{ID: "u1", Role: models.RoleAdmin}, expired))
	id := sessionCookie(t, rec, "sid").Value

	c2, _ := testContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: "sid", Value: id})
	assert.Nil(t, mgr.Current(c2))

	_, err := store.Get(c2.Request.Context(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentAcceptsUnexpiredAndOpaqueTokens(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, config.SessionConfig{CookieName: "sid", TTL: time.Hour}, nil)

	c, rec := testContext(t)
	valid := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, mgr.Login(c, models.User{ID: "u1", Role: models.RoleAdmin}, valid))
	id := sessionCookie(t, rec, "sid").Value

	c2, _ := testContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: "sid", Value: id})
	s := mgr.Current(c2)
	require.NotNil(t, s)
	assert.True(t, s.Admin())

	c3, rec3 := testContext(t)
	require.NoError(t, mgr.Login(c3, models.User{ID: "u2", Role: models.RoleStudent}, "opaque-token"))
	id3 := sessionCookie(t, rec3, "sid").Value

	c4, _ := testContext(t)
	c4.Request.AddCookie(&http.Cookie{Name: "sid", Value: id3})
	s = mgr.Current(c4)
	require.NotNil(t, s)
	assert.True(t, s.Student())
	assert.False(t, s.Admin())
}

func TestOnChangeNotifiedOnLoginAndLogout(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), config.SessionConfig{CookieName: "sid", TTL: time.Hour}, nil)

	var events []Event
	mgr.OnChange(func(e Event) { events = append(events, e) })

	c, rec := testContext(t)
	require.NoError(t, mgr.Login(c, models.User{ID: "u1", Name: "Ana"}, "tok"))

	c2, _ := testContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: "sid", Value: sessionCookie(t, rec, "sid").Value})
	mgr.Logout(c2)

	require.Len(t, events, 2)
	assert.Equal(t, EventLogin, events[0].Kind)
	assert.Equal(t, "Ana", events[0].User.Name)
	assert.Equal(t, EventLogout, events[1].Kind)
}
