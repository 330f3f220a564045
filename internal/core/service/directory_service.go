package service

import (
	"context"
	"fmt"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

// UsersPerPage is the account listing page size.
const UsersPerPage = 25

type DirectoryService struct {
	users ports.UserRepository
	todos ports.TodoRepository
}

func NewDirectoryService(users ports.UserRepository, todos ports.TodoRepository) *DirectoryService {
	return &DirectoryService{users: users, todos: todos}
}

func (s *DirectoryService) UsersPage(ctx context.Context, rawPage string) (*domain.Page[*domain.User], error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("users page: count: %w", err)
	}

	number := domain.ResolvePage(rawPage, total, UsersPerPage)
	page := domain.NewPage[*domain.User](nil, number, UsersPerPage, total)

	items, err := s.users.List(ctx, page.Offset(), UsersPerPage)
	if err != nil {
		return nil, fmt.Errorf("users page: list: %w", err)
	}
	page.Items = items
	return page, nil
}

func (s *DirectoryService) Todos(ctx context.Context) ([]*domain.TodoItem, error) {
	items, err := s.todos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("todos: %w", err)
	}
	return items, nil
}
