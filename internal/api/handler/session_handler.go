package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/api/envelope"
	"github.com/sirpyerre/account-portal/internal/api/metrics"
	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

const bearerPrefix = "Bearer "

// SessionWriter persists the session of the current request.
type SessionWriter interface {
	Save(c echo.Context, s domain.Session) error
}

// SessionHandler establishes server-side sessions from identity-provider tokens.
type SessionHandler struct {
	verifier ports.IdentityVerifier
	users    ports.UserService
	sessions SessionWriter
	log      zerolog.Logger
}

func NewSessionHandler(verifier ports.IdentityVerifier, users ports.UserService, sessions SessionWriter, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{verifier: verifier, users: users, sessions: sessions, log: log}
}

// Create godoc
//
// @Summary      Establish a session from an ID token
// @Description  Verifies the bearer token, creates or backfills the local user and stores the session.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sessionRequest  false  "Display name, required the first time a user signs in"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  envelope.Failure
// @Failure      401   {object}  envelope.Failure
// @Failure      405   {object}  envelope.Failure
// @Failure      500   {object}  envelope.Failure
// @Router       /sessions/ [post]
func (h *SessionHandler) Create(c echo.Context) error {
	token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return h.reject(err)
	}

	ctx := c.Request().Context()

	start := time.Now()
	identity, err := h.verifier.Verify(ctx, token)
	metrics.TokenVerifyDuration.WithLabelValues(metrics.Outcome(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return h.reject(envelope.Wrap(http.StatusUnauthorized, "Error verifying token", err))
	}
	if identity.UID == "" {
		return h.reject(envelope.Unauthorized("Invalid token"))
	}

	req, err := decodeSessionRequest(c)
	if err != nil {
		return h.reject(err)
	}

	user, created, err := h.users.Upsert(ctx, identity.UID, req.Name, identity.Email)
	if errors.Is(err, domain.ErrNameRequired) {
		return h.reject(envelope.BadRequest("Name is required for new users"))
	}
	if err != nil {
		return h.reject(envelope.Wrap(http.StatusInternalServerError, "Error establishing session", err))
	}

	if err := h.sessions.Save(c, domain.NewSession(user)); err != nil {
		return h.reject(envelope.Wrap(http.StatusInternalServerError, "Error establishing session", err))
	}

	label := "existing"
	if created {
		label = "created"
	}
	metrics.SessionsEstablishedTotal.WithLabelValues(label).Inc()

	return c.JSON(http.StatusOK, toSessionResponse(user, created))
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", envelope.Unauthorized("Authorization header missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", envelope.Unauthorized("Invalid authorization header format")
	}
	// The token is the second space separated field; "Bearer  x" has none.
	token := strings.TrimSpace(strings.Split(header, " ")[1])
	if token == "" {
		return "", envelope.Unauthorized("Token missing")
	}
	return token, nil
}

// decodeSessionRequest reads the optional JSON body. An empty body is an
// empty request.
func decodeSessionRequest(c echo.Context) (sessionRequest, error) {
	var req sessionRequest

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return req, envelope.Wrap(http.StatusBadRequest, "Invalid request body", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(raw, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return req, envelope.Wrap(http.StatusBadRequest, "Invalid request body", err)
		}
		return req, envelope.BadRequest("Invalid JSON")
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return req, envelope.Wrap(http.StatusBadRequest, "Invalid request body", err)
	}
	return req, nil
}

func (h *SessionHandler) reject(err error) error {
	var env *envelope.Error
	if errors.As(err, &env) {
		metrics.SessionFailuresTotal.WithLabelValues(failureReason(env)).Inc()
		if env.Status >= http.StatusInternalServerError {
			h.log.Error().Err(env.Err).Msg("session establishment failed")
		}
	}
	return err
}

func failureReason(e *envelope.Error) string {
	switch e.Message {
	case "Authorization header missing":
		return "header_missing"
	case "Invalid authorization header format":
		return "header_malformed"
	case "Token missing":
		return "token_missing"
	case "Error verifying token":
		return "verification_failed"
	case "Invalid token":
		return "uid_missing"
	case "Invalid JSON", "Invalid request body":
		return "bad_request"
	case "Name is required for new users":
		return "name_required"
	default:
		return "store_error"
	}
}
