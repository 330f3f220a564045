package ports

import (
	"context"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// IdentityVerifier checks an identity-provider token and returns its claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.Identity, error)
}
