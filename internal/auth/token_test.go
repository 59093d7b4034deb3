package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSessionToken_Format(t *testing.T) {
	token, err := NewSessionToken()
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	if err := ValidateTokenFormat(token); err != nil {
		t.Errorf("minted token %q failed format validation: %v", token, err)
	}

	parts := strings.Split(token, "_")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	if parts[0] != "nd" {
		t.Errorf("token prefix = %q, want nd", parts[0])
	}
	if len(parts[1]) != 26 {
		t.Errorf("ULID part length = %d, want 26", len(parts[1]))
	}
	if len(parts[2]) != 32 {
		t.Errorf("secret part length = %d, want 32", len(parts[2]))
	}
}

func TestNewSessionToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		if err != nil {
			t.Fatalf("NewSessionToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token minted: %s", token)
		}
		seen[token] = true
	}
}

func TestValidateTokenFormat_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"wrong prefix", "pk_01HV3Q6AKQJ0F7Y2M8T9R5XWZC_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"},
		{"short ulid", "nd_01HV3Q6AKQ_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"},
		{"short secret", "nd_01HV3Q6AKQJ0F7Y2M8T9R5XWZC_4f8d"},
		{"uppercase secret", "nd_01HV3Q6AKQJ0F7Y2M8T9R5XWZC_4F8D2E1B9C7A5F3D2E1B9C7A5F3D2E1B"},
		{"garbage", "definitely-not-a-token"},
		{"sql injection", "nd_' OR '1'='1_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTokenFormat(tt.token)
			if !errors.Is(err, ErrInvalidTokenFormat) {
				t.Errorf("ValidateTokenFormat(%q) = %v, want ErrInvalidTokenFormat", tt.token, err)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer abc123", "abc123"},
		{"empty header", "", ""},
		{"no bearer prefix", "abc123", ""},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"lowercase bearer", "bearer abc123", ""},
		{"bearer only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearerToken(tt.header); got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
