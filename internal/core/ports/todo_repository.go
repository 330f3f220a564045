package ports

import (
	"context"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// TodoRepository reads the demo to-do list.
type TodoRepository interface {
	List(ctx context.Context) ([]*domain.TodoItem, error)
}
