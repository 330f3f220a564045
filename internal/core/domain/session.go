package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Session caches the canonical user record for one session identifier.
type Session struct {
	FirebaseUID string
	Username    string
	Email       string
}

// NewSession builds the session payload for an authenticated user.
func NewSession(u *User) Session {
	return Session{
		FirebaseUID: u.FirebaseUID,
		Username:    u.Name,
		Email:       u.Email,
	}
}

// Authenticated reports whether the session is bound to an account.
func (s *Session) Authenticated() bool {
	return s != nil && s.FirebaseUID != ""
}
