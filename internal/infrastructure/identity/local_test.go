package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

func TestLocalVerifier_RoundTrip(t *testing.T) {
	v, err := NewLocalVerifier("secret")
	if err != nil {
		t.Fatalf("NewLocalVerifier: %v", err)
	}

	token, err := v.Issue(domain.Identity{UID: "uid-1", Email: "a@example.com", Name: "Alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UID != "uid-1" || identity.Email != "a@example.com" || identity.Name != "Alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestLocalVerifier_FutureTokenIsClockSkew(t *testing.T) {
	v, _ := NewLocalVerifier("secret")
	token, err := v.IssueAt(domain.Identity{UID: "uid-1"}, time.Now().Add(time.Minute), time.Hour)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}

	_, err = v.Verify(context.Background(), token)
	if err == nil {
		t.Fatalf("expected error for a token from the future")
	}
	if !IsClockSkew(err) {
		t.Fatalf("expected clock-skew error, got %v", err)
	}
}

func TestLocalVerifier_Rejections(t *testing.T) {
	v, _ := NewLocalVerifier("secret")
	other, _ := NewLocalVerifier("other-secret")

	expired, _ := v.IssueAt(domain.Identity{UID: "uid-1"}, time.Now().Add(-2*time.Hour), time.Hour)
	foreign, _ := other.Issue(domain.Identity{UID: "uid-1"}, time.Hour)

	cases := map[string]struct {
		token string
		want  error
	}{
		"expired":   {expired, jwt.ErrTokenExpired},
		"signature": {foreign, jwt.ErrTokenSignatureInvalid},
		"malformed": {"not-a-token", jwt.ErrTokenMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tc.token)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if IsClockSkew(err) {
				t.Fatalf("%s must not be treated as clock skew", name)
			}
		})
	}
}

func TestLocalVerifier_HMACOnly(t *testing.T) {
	v, _ := NewLocalVerifier("secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "uid-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := v.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestNewLocalVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewLocalVerifier(""); !errors.Is(err, ErrLocalSecretNotSet) {
		t.Fatalf("expected ErrLocalSecretNotSet, got %v", err)
	}
}
