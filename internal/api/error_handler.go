package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/api/envelope"
	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Writes envelope errors with their own status, message and details.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"ok": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, envelope.Failure) {
	var env *envelope.Error
	if errors.As(err, &env) {
		return env.Status, env.Body()
	}

	// Echo's own errors (404 from router, 405, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, envelope.Failure{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest, envelope.Failure{Error: "Name is required for new users"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, envelope.Failure{Error: "user not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, envelope.Failure{Error: "user already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, envelope.Failure{Error: "internal server error"}
}
