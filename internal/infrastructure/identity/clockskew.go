package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Provider messages for a token whose validity window has not started yet on
// the local clock.
var clockSkewMessages = []string{
	"used too early",
	"issued at future timestamp",
}

// IsClockSkew reports whether err was caused by a token that is not valid yet
// according to the local clock (issuer and verifier clocks disagree).
func IsClockSkew(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, jwt.ErrTokenNotValidYet) || errors.Is(err, jwt.ErrTokenUsedBeforeIssued) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range clockSkewMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
