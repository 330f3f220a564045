package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

// pageData is the view model shared by every HTML page.
type pageData struct {
	Title   string
	Session *domain.Session
	Users   *domain.Page[*domain.User]
	Todos   []*domain.TodoItem
}

// PageHandler renders the HTML pages.
type PageHandler struct {
	directory ports.DirectoryService
}

func NewPageHandler(directory ports.DirectoryService) *PageHandler {
	return &PageHandler{directory: directory}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", pageData{Title: "Home", Session: ctxSession(c)})
}

// Accounts lists users in insertion order, one page at a time (?page=N).
func (h *PageHandler) Accounts(c echo.Context) error {
	page, err := h.directory.UsersPage(c.Request().Context(), c.QueryParam("page"))
	if err != nil {
		return fmt.Errorf("accounts page: %w", err)
	}
	return c.Render(http.StatusOK, "users.html", pageData{Title: "Accounts", Session: ctxSession(c), Users: page})
}

func (h *PageHandler) Todos(c echo.Context) error {
	items, err := h.directory.Todos(c.Request().Context())
	if err != nil {
		return fmt.Errorf("todos page: %w", err)
	}
	return c.Render(http.StatusOK, "todos.html", pageData{Title: "To-dos", Session: ctxSession(c), Todos: items})
}

// Dashboard shows the signed-in account. It is routed behind
// middleware.RequireSession, so a visitor without a session is redirected to
// the home page (302) rather than shown the account list.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard.html", pageData{Title: "Dashboard", Session: ctxSession(c)})
}
