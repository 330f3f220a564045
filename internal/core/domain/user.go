package domain

import (
	"errors"
	"strings"
	"time"
)

// NameMaxLength mirrors the storage limit on a user's display name.
const NameMaxLength = 50

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrNameRequired = errors.New("name required for new users")
)

// User is the local account record linked to an identity-provider account.
// FirebaseUID is the external identity key and never changes after creation.
type User struct {
	ID          string    `json:"-"`
	FirebaseUID string    `json:"firebase_uid"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Backfill fills name and email only where the stored value is empty and the
// incoming value is not. A non-empty stored value is never overwritten.
// It reports whether any field changed.
func (u *User) Backfill(name, email string) bool {
	changed := false
	if strings.TrimSpace(u.Name) == "" && name != "" {
		u.Name = name
		changed = true
	}
	if strings.TrimSpace(u.Email) == "" && email != "" {
		u.Email = email
		changed = true
	}
	return changed
}
