package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const refreshTokenBytes = 64

// NewRefreshToken returns an opaque, unguessable refresh token.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("jwt.NewRefreshToken: %w", err)
	}

	return base64.StdEncoding.EncodeToString(b), nil
}
