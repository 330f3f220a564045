package redis

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

const (
	sessionKeyPrefix = "session:"

	fieldFirebaseUID = "firebase_uid"
	fieldUsername    = "username"
	fieldEmail       = "email"
)

// SessionStore keeps each session as a Redis hash with a TTL.
// Key format: session:<hex(blake2b-256(session id))>. Session ids are hashed
// so the keyspace never holds a usable cookie value.
type SessionStore struct {
	client redis.Cmdable
}

func NewSessionStore(client redis.Cmdable) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	vals, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if len(vals) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.Session{
		FirebaseUID: vals[fieldFirebaseUID],
		Username:    vals[fieldUsername],
		Email:       vals[fieldEmail],
	}, nil
}

// Save replaces the whole hash in one MULTI/EXEC so no field of an earlier
// session survives.
func (s *SessionStore) Save(ctx context.Context, id string, session domain.Session, ttl time.Duration) error {
	key := sessionKey(id)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldFirebaseUID, session.FirebaseUID,
			fieldUsername, session.Username,
			fieldEmail, session.Email,
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}
