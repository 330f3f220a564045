package domain

// Identity is the verified claim set returned by the identity provider.
// Email and Name are optional and may be empty.
type Identity struct {
	UID   string
	Email string
	Name  string
}
