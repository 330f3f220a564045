package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

const sessionKey = "session"

// SessionLoader resolves the session of the current request.
type SessionLoader interface {
	Load(c echo.Context) (*domain.Session, error)
}

// LoadSession injects the request's session, if any, into the context.
// A store failure is logged and the request continues anonymously.
func LoadSession(loader SessionLoader, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := loader.Load(c)
			switch {
			case err == nil:
				c.Set(sessionKey, sess)
			case !errors.Is(err, domain.ErrSessionNotFound):
				log.Warn().Err(err).Str("path", c.Path()).Msg("session load failed")
			}
			return next(c)
		}
	}
}

// Session returns the session injected by LoadSession, or nil.
func Session(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}

// RequireSession redirects requests without an authenticated session.
func RequireSession(redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Session(c).Authenticated() {
				return c.Redirect(http.StatusFound, redirectTo)
			}
			return next(c)
		}
	}
}
