package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Session token format: nd_{ulid}_{secret}
// Example: nd_01HV3Q6AKQJ0F7Y2M8T9R5XWZC_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
//
// The ULID component gives tokens a sortable issue timestamp; the secret
// carries the entropy. The full token is the lookup key in the session
// store, so nothing about it is persisted in Postgres.
const tokenSecretBytes = 16

// ErrInvalidTokenFormat indicates the token does not match the expected shape.
var ErrInvalidTokenFormat = errors.New("invalid session token format")

var tokenFormatRegex = regexp.MustCompile(`^nd_[0-9A-HJKMNP-TV-Z]{26}_[a-f0-9]{32}$`)

// NewSessionToken mints an opaque session token.
func NewSessionToken() (string, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}

	return fmt.Sprintf("nd_%s_%s", ulid.Make().String(), hex.EncodeToString(secret)), nil
}

// ValidateTokenFormat checks whether a token matches the issued shape.
// Used to reject garbage before hitting the session store.
func ValidateTokenFormat(token string) error {
	if !tokenFormatRegex.MatchString(token) {
		return ErrInvalidTokenFormat
	}
	return nil
}

// ExtractBearerToken pulls a bearer token out of an Authorization header
// value. Returns empty string when the header is absent or malformed.
func ExtractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
