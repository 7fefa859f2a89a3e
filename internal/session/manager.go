package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sms-portal/internal/models"
	"github.com/noah-isme/sms-portal/pkg/config"
	appErrors "github.com/noah-isme/sms-portal/pkg/errors"
)

// EventKind distinguishes session change notifications.
type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// Event is delivered to OnChange subscribers on login and logout.
type Event struct {
	Kind EventKind
	User models.User
}

// Manager issues, loads and revokes sessions, and notifies subscribers of
// login/logout so interested components do not reach into session state.
type Manager struct {
	store  Store
	cfg    config.SessionConfig
	logger *zap.Logger
	now    func() time.Time

	mu   sync.Mutex
	subs []func(Event)
}

// NewManager constructs a session manager.
func NewManager(store Store, cfg config.SessionConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "portal_session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Manager{store: store, cfg: cfg, logger: logger, now: time.Now}
}

// OnChange registers a subscriber for login/logout events.
func (m *Manager) OnChange(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Login stores the identity/token pair as one record and sets the session
// cookie. Both must be present; a partial session is never created.
func (m *Manager) Login(c *gin.Context, user models.User, token string) error {
	if token == "" || user.ID == "" {
		return appErrors.Clone(appErrors.ErrInternal, "incomplete login response")
	}

	s := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Token:     token,
		CreatedAt: m.now(),
	}
	if err := m.store.Put(c.Request.Context(), s, m.cfg.TTL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}

	m.setCookie(c, s.ID, int(m.cfg.TTL.Seconds()))
	m.notify(Event{Kind: EventLogin, User: user})
	return nil
}

// Logout deletes the stored record and clears the cookie. Both go together so
// no half-session is left behind.
func (m *Manager) Logout(c *gin.Context) {
	id, err := c.Cookie(m.cfg.CookieName)
	if err == nil && id != "" {
		var user models.User
		if s, err := m.store.Get(c.Request.Context(), id); err == nil {
			user = s.User
		}
		if err := m.store.Delete(c.Request.Context(), id); err != nil {
			m.logger.Warn("failed to delete session", zap.Error(err))
		}
		m.notify(Event{Kind: EventLogout, User: user})
	}
	m.setCookie(c, "", -1)
}

// Current returns the session for the request cookie, or nil when there is
// none. Expired backend tokens and malformed records surface as nil.
func (m *Manager) Current(c *gin.Context) *Session {
	id, err := c.Cookie(m.cfg.CookieName)
	if err != nil || id == "" {
		return nil
	}

	s, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if err != ErrNotFound {
			m.logger.Warn("failed to load session", zap.Error(err))
		}
		return nil
	}
	if !s.Authenticated() {
		_ = m.store.Delete(c.Request.Context(), id)
		return nil
	}
	if tokenExpired(s.Token, m.now()) {
		_ = m.store.Delete(c.Request.Context(), id)
		m.logger.Info("session token expired", zap.String("user_id", s.User.ID))
		return nil
	}
	return s
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) notify(e Event) {
	m.mu.Lock()
	subs := make([]func(Event), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}

// tokenExpired reads the token's exp claim without verifying the signature;
// the signing secret belongs to the backend. Opaque or claimless tokens are
// passed through and left for the backend to reject.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
