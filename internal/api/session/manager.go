// Package session binds server-side session state to a browser cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

const (
	DefaultCookieName = "sessionid"
	DefaultTTL        = 14 * 24 * time.Hour
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager reads and writes the session of the current request.
type Manager struct {
	store ports.SessionStore
	opts  Options
	newID func() string
}

func NewManager(store ports.SessionStore, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Manager{store: store, opts: opts, newID: uuid.NewString}
}

// Load returns the session named by the request cookie. A request without a
// cookie, or whose session expired, yields domain.ErrSessionNotFound.
func (m *Manager) Load(c echo.Context) (*domain.Session, error) {
	id := m.id(c)
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	return m.store.Get(c.Request().Context(), id)
}

// Save replaces the state of the current session and refreshes the cookie and
// TTL. The request's identifier is kept only when the store knows it; an
// absent or unknown one is replaced by a freshly minted identifier.
func (m *Manager) Save(c echo.Context, s domain.Session) error {
	id, err := m.issuedID(c)
	if err != nil {
		return err
	}
	if err := m.store.Save(c.Request().Context(), id, s, m.opts.TTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.SetCookie(m.cookie(id, int(m.opts.TTL/time.Second), time.Now().Add(m.opts.TTL)))
	return nil
}

// Flush deletes the current session and expires its cookie. It succeeds when
// there is no session.
func (m *Manager) Flush(c echo.Context) error {
	id := m.id(c)
	if id == "" {
		return nil
	}
	if err := m.store.Delete(c.Request().Context(), id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	c.SetCookie(m.cookie("", -1, time.Unix(0, 0)))
	return nil
}

// issuedID returns the request's identifier if it names a stored session,
// otherwise a new one.
func (m *Manager) issuedID(c echo.Context) (string, error) {
	id := m.id(c)
	if id == "" {
		return m.newID(), nil
	}
	_, err := m.store.Get(c.Request().Context(), id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, domain.ErrSessionNotFound):
		return m.newID(), nil
	default:
		return "", fmt.Errorf("load session: %w", err)
	}
}

func (m *Manager) id(c echo.Context) string {
	ck, err := c.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (m *Manager) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
