package dto

import "github.com/newsdesk/newsdesk/internal/model"

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse wraps the created account.
// The credential field is stripped by the model's JSON tags.
type SignupResponse struct {
	User *model.User `json:"user"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the minted session token and the account.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
