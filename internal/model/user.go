// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// User represents a registered account.
// PasswordHash is never serialized to JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultName derives a display name from the local part of an email address.
func DefaultName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
