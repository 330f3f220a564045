package handler

import "github.com/sirpyerre/account-portal/internal/core/domain"

// --- Request / Response types ---

// sessionRequest is the optional body of POST /sessions/.
type sessionRequest struct {
	Name string `json:"name" validate:"max=50" example:"Alice"`
}

type sessionUserResponse struct {
	FirebaseUID string `json:"firebase_uid" example:"x1Yz8fQ2"`
	Name        string `json:"name" example:"Alice"`
	Email       string `json:"email" example:"alice@example.com"`
}

type sessionResponse struct {
	OK      bool                `json:"ok" example:"true"`
	User    sessionUserResponse `json:"user"`
	Created bool                `json:"created" example:"false"`
}

func toSessionResponse(u *domain.User, created bool) sessionResponse {
	return sessionResponse{
		OK: true,
		User: sessionUserResponse{
			FirebaseUID: u.FirebaseUID,
			Name:        u.Name,
			Email:       u.Email,
		},
		Created: created,
	}
}
