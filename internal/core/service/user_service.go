package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/account-portal/internal/core/domain"
	"github.com/sirpyerre/account-portal/internal/core/ports"
)

// UserService implements the find-or-create-then-backfill flow for users
// authenticated through the identity provider.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log, now: time.Now}
}

// Upsert returns the user for uid, creating it on first sight.
//
// A new record needs a non-empty name; without one domain.ErrNameRequired is
// returned and nothing is written. Existing records only get their empty
// fields filled in, and are written back only when something changed.
func (s *UserService) Upsert(ctx context.Context, uid, name, email string) (*domain.User, bool, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	user, err := s.repo.FindByUID(ctx, uid)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if name == "" {
			return nil, false, domain.ErrNameRequired
		}

		now := s.now().UTC()
		stored, created, err := s.repo.GetOrCreate(ctx, &domain.User{
			FirebaseUID: uid,
			Name:        name,
			Email:       email,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, false, fmt.Errorf("upsert user: create: %w", err)
		}
		if created {
			s.log.Info().Str("firebase_uid", uid).Msg("user created")
			return stored, true, nil
		}
		// Another request created the record between the lookup and the insert.
		user = stored
	case err != nil:
		return nil, false, fmt.Errorf("upsert user: find: %w", err)
	}

	if user.Backfill(name, email) {
		user.UpdatedAt = s.now().UTC()
		if err := s.repo.UpdateProfile(ctx, user); err != nil {
			return nil, false, fmt.Errorf("upsert user: update: %w", err)
		}
		s.log.Info().Str("firebase_uid", uid).Msg("user profile backfilled")
	}

	return user, false, nil
}
