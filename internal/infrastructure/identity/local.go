package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

// LocalIssuer is the iss claim of tokens minted by LocalVerifier.Issue.
const LocalIssuer = "account-portal-local"

var ErrLocalSecretNotSet = errors.New("LOCAL_JWT_SECRET is not set")

// localClaims mirrors the claim names of a Firebase ID token.
type localClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// LocalVerifier verifies HS256 tokens signed with a shared secret. It stands
// in for Firebase in local development and end-to-end tests.
type LocalVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewLocalVerifier(secret string) (*LocalVerifier, error) {
	if secret == "" {
		return nil, ErrLocalSecretNotSet
	}
	return &LocalVerifier{secret: []byte(secret), now: time.Now}, nil
}

// Verify rejects expired, malformed and wrongly signed tokens. A token with
// iat or nbf in the future fails with a clock-skew error.
func (v *LocalVerifier) Verify(_ context.Context, idToken string) (*domain.Identity, error) {
	claims := &localClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, err
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	return &domain.Identity{UID: uid, Email: claims.Email, Name: claims.Name}, nil
}

// Issue mints a token for identity valid from now for ttl.
func (v *LocalVerifier) Issue(identity domain.Identity, ttl time.Duration) (string, error) {
	return v.IssueAt(identity, v.now(), ttl)
}

// IssueAt mints a token whose iat and nbf are issuedAt.
func (v *LocalVerifier) IssueAt(identity domain.Identity, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := localClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    LocalIssuer,
			Subject:   identity.UID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID: identity.UID,
		Email:  identity.Email,
		Name:   identity.Name,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
