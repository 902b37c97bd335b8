package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthenticationResponse is returned by register, login and refresh.
type AuthenticationResponse struct {
	Token                  string    `json:"token"`
	Expiration             time.Time `json:"expiration"`
	RefreshToken           string    `json:"refreshToken"`
	RefreshTokenExpiration time.Time `json:"refreshTokenExpiration"`
	Email                  string    `json:"email"`
	DisplayName            string    `json:"displayName"`

	UserID uuid.UUID `json:"-"`
}

// TokenClaims is the identity recovered from a verified access token.
type TokenClaims struct {
	UserID    uuid.UUID
	JTI       string
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
