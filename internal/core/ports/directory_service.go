package ports

import (
	"context"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// DirectoryService backs the listing pages.
type DirectoryService interface {
	// UsersPage resolves rawPage (the ?page= query value) and returns that page.
	UsersPage(ctx context.Context, rawPage string) (*domain.Page[*domain.User], error)
	Todos(ctx context.Context) ([]*domain.TodoItem, error)
}
