package model

// Identity is the verified result of resolving a session token.
// A request either carries a valid Identity or is unauthenticated;
// handlers never see a partially-resolved identity.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
