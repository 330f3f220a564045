package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/account-portal/internal/api/middleware"
	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// ctxSession returns the session loaded by middleware.LoadSession. Pages
// rendered without one see an anonymous, empty session.
func ctxSession(c echo.Context) *domain.Session {
	if sess := middleware.Session(c); sess != nil {
		return sess
	}
	return &domain.Session{}
}
