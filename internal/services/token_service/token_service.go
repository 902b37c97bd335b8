package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/jwt"
	"citiesmanager/internal/lib/logger/sl"

	"github.com/google/uuid"
)

var (
	ErrRefreshTokenInvalidOrExpired = errors.New("refresh token is invalid or expired")
)

type TokenIssuer interface {
	Issue(userID uuid.UUID, email, name string) (string, time.Time, error)
}

type RefreshTokenSaver interface {
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}

type TokenService struct {
	log        *slog.Logger
	issuer     TokenIssuer
	saver      RefreshTokenSaver
	refreshTTL time.Duration

	newRefreshToken func() (string, error)
	now             func() time.Time
}

type Option func(*TokenService)

func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

func WithRefreshTokenGenerator(gen func() (string, error)) Option {
	return func(s *TokenService) {
		s.newRefreshToken = gen
	}
}

func NewTokenService(log *slog.Logger, issuer TokenIssuer, saver RefreshTokenSaver, refreshTTL time.Duration, opts ...Option) *TokenService {
	s := &TokenService{
		log:             log,
		issuer:          issuer,
		saver:           saver,
		refreshTTL:      refreshTTL,
		newRefreshToken: jwt.NewRefreshToken,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// GenerateTokens issues an access token and a fresh refresh token for the
// user and stores the refresh token, replacing whatever was there.
func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.AuthenticationResponse, error) {
	const op = "services.token_service.GenerateTokens"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
	)

	accessToken, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		log.Error("failed to issue access token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.newRefreshToken()
	if err != nil {
		log.Error("failed to generate refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshExpiresAt := s.now().UTC().Add(s.refreshTTL)

	if err := s.saver.UpdateRefreshToken(ctx, user.ID, refreshToken, refreshExpiresAt); err != nil {
		log.Error("failed to store refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("token pair issued")

	return &models.AuthenticationResponse{
		Token:                  accessToken,
		Expiration:             expiresAt,
		RefreshToken:           refreshToken,
		RefreshTokenExpiration: refreshExpiresAt,
		Email:                  user.Email,
		DisplayName:            user.Name,
		UserID:                 user.ID,
	}, nil
}

// RefreshTokens rotates the pair when presented matches the user's stored,
// unexpired refresh token.
func (s *TokenService) RefreshTokens(ctx context.Context, user models.User, presented string) (*models.AuthenticationResponse, error) {
	const op = "services.token_service.RefreshTokens"

	if !s.matches(user, presented) {
		return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalidOrExpired)
	}

	resp, err := s.GenerateTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

func (s *TokenService) matches(user models.User, presented string) bool {
	if presented == "" || user.RefreshToken == "" {
		return false
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(user.RefreshToken)) != 1 {
		return false
	}

	return user.RefreshTokenExpiration.After(s.now())
}
