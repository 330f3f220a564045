package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/api/envelope"
	"github.com/sirpyerre/account-portal/internal/api/metrics"
)

// SessionFlusher destroys the session of the current request.
type SessionFlusher interface {
	Flush(c echo.Context) error
}

type LogoutHandler struct {
	sessions SessionFlusher
	log      zerolog.Logger
}

func NewLogoutHandler(sessions SessionFlusher, log zerolog.Logger) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, log: log}
}

// Logout godoc
//
// @Summary      Log out
// @Description  Deletes the server-side session. Succeeds when there is no session.
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  envelope.Message
// @Failure      405  {object}  envelope.Failure
// @Failure      500  {object}  envelope.Failure
// @Router       /logout/ [post]
func (h *LogoutHandler) Logout(c echo.Context) error {
	if err := h.sessions.Flush(c); err != nil {
		metrics.LogoutsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Msg("logout failed")
		return envelope.Wrap(http.StatusInternalServerError, "Error logging out user", err)
	}

	metrics.LogoutsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, envelope.Message{OK: true, Message: "User logged out successfully"})
}
