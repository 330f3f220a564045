package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sirpyerre/account-portal/docs"
	"github.com/sirpyerre/account-portal/internal/api/envelope"
	"github.com/sirpyerre/account-portal/internal/api/handler"
	"github.com/sirpyerre/account-portal/internal/api/middleware"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

// SessionManager is the cookie-bound session of a request.
type SessionManager interface {
	middleware.SessionLoader
	handler.SessionWriter
	handler.SessionFlusher
}

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Verifier  ports.IdentityVerifier
	Users     ports.UserService
	Directory ports.DirectoryService
	Sessions  SessionManager
	Renderer  echo.Renderer
	// HealthChecks are run by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.Check
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = deps.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
		StatusCodeResolver: statusCode,
	}))

	// --- Session endpoints (POST only, any other method gets the 405 envelope) ---
	sessionHandler := handler.NewSessionHandler(deps.Verifier, deps.Users, deps.Sessions, deps.Log)
	logoutHandler := handler.NewLogoutHandler(deps.Sessions, deps.Log)
	postOnly := middleware.AllowMethods(http.MethodPost)

	e.Any("/sessions/", sessionHandler.Create, postOnly)
	e.Any("/logout/", logoutHandler.Logout, postOnly)

	// --- Pages ---
	pageHandler := handler.NewPageHandler(deps.Directory)
	withSession := middleware.LoadSession(deps.Sessions, deps.Log)

	e.GET("/", pageHandler.Home, withSession)
	e.GET("/account/", pageHandler.Accounts, withSession)
	e.GET("/todos/", pageHandler.Todos, withSession)
	// Anonymous visitors are redirected home instead of seeing the account list.
	e.GET("/dashboard/", pageHandler.Dashboard, withSession, middleware.RequireSession("/"))

	// --- Health probes, metrics and docs ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// statusCode reports the status the error handler will write for err.
func statusCode(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var env *envelope.Error
	if errors.As(err, &env) {
		return env.Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
