package ports

import (
	"context"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// FindByUID returns domain.ErrUserNotFound when no record exists.
	FindByUID(ctx context.Context, uid string) (*domain.User, error)
	// GetOrCreate atomically inserts user unless a record with the same
	// FirebaseUID exists. created is true only when this call inserted it.
	GetOrCreate(ctx context.Context, user *domain.User) (stored *domain.User, created bool, err error)
	// UpdateProfile persists name, email and updated_at of an existing record.
	UpdateProfile(ctx context.Context, user *domain.User) error
	// List returns users in insertion order.
	List(ctx context.Context, offset, limit int64) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
