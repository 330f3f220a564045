package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// SessionStore keeps server-side session state keyed by an opaque identifier.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound when nothing is stored for id.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Save replaces any state stored for id.
	Save(ctx context.Context, id string, session domain.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
