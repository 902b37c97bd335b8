package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"citiesmanager/internal/config"
	"citiesmanager/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	ErrMalformedToken      = errors.New("malformed token")
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrUnexpectedAlgorithm = errors.New("unexpected signing algorithm")
	ErrInvalidIssuer       = errors.New("invalid token issuer")
	ErrInvalidAudience     = errors.New("invalid token audience")
	ErrInvalidClaims       = errors.New("invalid token claims")
	ErrTokenExpired        = errors.New("token expired")
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 access tokens for a single issuer and
// audience.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Signer)

func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

func New(cfg config.JWTConfig, opts ...Option) *Signer {
	s := &Signer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue signs a new access token for the user and returns it with its expiry.
func (s *Signer) Issue(userID uuid.UUID, email, name string) (string, time.Time, error) {
	const op = "jwt.Issue"

	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return token, expiresAt, nil
}

// Validate fully verifies the token, lifetime included.
func (s *Signer) Validate(tokenString string) (*models.TokenClaims, error) {
	return s.parse(tokenString, true)
}

// ValidateIgnoringExpiry verifies signature, algorithm, issuer and audience
// but accepts tokens whose exp is in the past.
func (s *Signer) ValidateIgnoringExpiry(tokenString string) (*models.TokenClaims, error) {
	return s.parse(tokenString, false)
}

func (s *Signer) parse(tokenString string, checkLifetime bool) (tc *models.TokenClaims, err error) {
	defer func() {
		if r := recover(); r != nil {
			tc, err = nil, fmt.Errorf("%w: %v", ErrInvalidToken, r)
		}
	}()

	claims := &Claims{}

	// exp, iss and aud are checked below so both validation modes share one path
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidIssuer)
	}

	if !slices.Contains(claims.Audience, s.audience) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidAudience)
	}

	if checkLifetime {
		if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrInvalidClaims)
	}

	tc = &models.TokenClaims{
		UserID: userID,
		JTI:    claims.ID,
		Email:  claims.Email,
		Name:   claims.Name,
	}

	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Time
	}

	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Time
	}

	return tc, nil
}

func (s *Signer) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedAlgorithm, token.Header["alg"])
	}

	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedAlgorithm, token.Method.Alg())
	}

	return s.secret, nil
}

func classify(err error) error {
	var cause error

	switch {
	case errors.Is(err, ErrUnexpectedAlgorithm):
		cause = ErrUnexpectedAlgorithm
	case errors.Is(err, jwt.ErrTokenMalformed):
		cause = ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		cause = ErrInvalidSignature
	default:
		cause = err
	}

	return fmt.Errorf("%w: %w", ErrInvalidToken, cause)
}
