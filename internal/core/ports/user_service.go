package ports

import (
	"context"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// UserService reconciles verified identities with local user records.
type UserService interface {
	Upsert(ctx context.Context, uid, name, email string) (*domain.User, bool, error)
}
