// Package envelope defines the JSON envelope shared by the session endpoints
// and the typed error handlers return to produce a failure envelope.
package envelope

import "net/http"

// Error is a failure that carries its own status and client-facing message.
// Details, when set, is exposed to the client alongside Message.
type Error struct {
	Status  int
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error without details.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Wrap returns an Error whose details are err's message.
func Wrap(status int, msg string, err error) *Error {
	e := &Error{Status: status, Message: msg, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func Unauthorized(msg string) *Error { return New(http.StatusUnauthorized, msg) }
func BadRequest(msg string) *Error   { return New(http.StatusBadRequest, msg) }

// Failure is the body written for every Error.
type Failure struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Body converts e to its wire form.
func (e *Error) Body() Failure {
	return Failure{OK: false, Error: e.Message, Details: e.Details}
}

// Message is the success body carrying a human readable note.
type Message struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
