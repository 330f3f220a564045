package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/account-portal/internal/api/envelope"
)

// AllowMethods rejects requests whose method is not listed with a 405
// envelope, e.g. "Only POST requests are allowed".
func AllowMethods(methods ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}
	allow := strings.Join(methods, ", ")
	msg := "Only " + strings.Join(methods, "/") + " requests are allowed"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[c.Request().Method]; !ok {
				c.Response().Header().Set(echo.HeaderAllow, allow)
				return envelope.New(http.StatusMethodNotAllowed, msg)
			}
			return next(c)
		}
	}
}
