package identity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIsClockSkew(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"python style", errors.New("Token used too early, 1700000001 < 1700000000. Check that your computer's clock is set correctly."), true},
		{"firebase go sdk", errors.New("ID token issued at future timestamp: 1700000300"), true},
		{"jwt not valid yet", fmt.Errorf("parse: %w", jwt.ErrTokenNotValidYet), true},
		{"jwt used before issued", fmt.Errorf("parse: %w", jwt.ErrTokenUsedBeforeIssued), true},
		{"expired", errors.New("ID token has expired at: 1700000000"), false},
		{"revoked", errors.New("ID token has been revoked"), false},
		{"jwt expired", jwt.ErrTokenExpired, false},
		{"malformed", jwt.ErrTokenMalformed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsClockSkew(tc.err); got != tc.want {
				t.Fatalf("IsClockSkew(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
