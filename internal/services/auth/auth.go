package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	"citiesmanager/internal/metrics"
	services "citiesmanager/internal/services/token_service"
	"citiesmanager/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyRegistered       = errors.New("email is already registered")
	ErrInvalidCredentials           = errors.New("invalid email or password")
	ErrInvalidToken                 = errors.New("invalid access token")
	ErrClaimMissing                 = errors.New("email claim is missing")
	ErrUserNotFound                 = errors.New("user not found")
	ErrIncompleteUserRecord         = errors.New("user record is incomplete")
	ErrRefreshTokenInvalidOrExpired = errors.New("refresh token is invalid or expired")
)

type Auth struct {
	log       *slog.Logger
	store     CredentialStore
	validator TokenValidator
	tokens    TokenPairIssuer
}

type CredentialStore interface {
	CreateUser(ctx context.Context, in models.RegisterInput) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (models.User, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}

type TokenValidator interface {
	ValidateIgnoringExpiry(token string) (*models.TokenClaims, error)
}

type TokenPairIssuer interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.AuthenticationResponse, error)
	RefreshTokens(ctx context.Context, user models.User, presented string) (*models.AuthenticationResponse, error)
}

func New(log *slog.Logger, store CredentialStore, validator TokenValidator, tokens TokenPairIssuer) *Auth {
	return &Auth{
		log:       log,
		store:     store,
		validator: validator,
		tokens:    tokens,
	}
}

// Register creates the account and signs the user in with a new token pair.
func (a *Auth) Register(ctx context.Context, in models.RegisterInput) (*models.AuthenticationResponse, error) {
	const op = "auth.Register"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", in.Email),
	)

	log.Info("registering user")

	_, err := a.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		log.Warn("email already registered")
		metrics.AuthEvent("register", "duplicate")

		return nil, fmt.Errorf("%s: %w", op, ErrEmailAlreadyRegistered)
	case !errors.Is(err, storage.ErrUserNotFound):
		log.Error("failed to look up user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.store.CreateUser(ctx, in)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("email already registered", sl.Err(err))
			metrics.AuthEvent("register", "duplicate")

			return nil, fmt.Errorf("%s: %w", op, ErrEmailAlreadyRegistered)
		}

		log.Error("failed to save user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := a.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to issue tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	metrics.AuthEvent("register", "ok")

	return resp, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*models.AuthenticationResponse, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", email),
	)

	log.Info("attempting to login user")

	user, err := a.store.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			log.Info("invalid credentials")
			metrics.AuthEvent("login", "invalid_credentials")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to verify credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.Email == "" || user.Name == "" {
		log.Warn("user record is incomplete", slog.String("user_id", user.ID.String()))

		return nil, fmt.Errorf("%s: %w", op, ErrIncompleteUserRecord)
	}

	resp, err := a.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to issue tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")
	metrics.AuthEvent("login", "ok")

	return resp, nil
}

// Logout drops the user's refresh session. Access tokens already issued stay
// valid until they expire.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	const op = "auth.Logout"

	log := a.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	if err := a.store.UpdateRefreshToken(ctx, userID, "", time.Time{}); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("logout for unknown user")

			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to clear refresh token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged out")
	metrics.AuthEvent("logout", "ok")

	return nil
}

// Refresh trades a possibly expired access token plus the current refresh
// token for a new pair. The presented refresh token stops working.
func (a *Auth) Refresh(ctx context.Context, accessToken, refreshToken string) (*models.AuthenticationResponse, error) {
	const op = "auth.Refresh"

	log := a.log.With(slog.String("op", op))

	claims, err := a.validator.ValidateIgnoringExpiry(accessToken)
	if err != nil {
		log.Info("rejected access token", sl.Err(err))
		metrics.AuthEvent("refresh", "invalid_token")

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}

	if claims.Email == "" {
		metrics.AuthEvent("refresh", "claim_missing")

		return nil, fmt.Errorf("%s: %w", op, ErrClaimMissing)
	}

	log = log.With(slog.String("email", claims.Email))

	user, err := a.store.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("token subject is not a known user")
			metrics.AuthEvent("refresh", "user_not_found")

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to look up user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.Email == "" || user.Name == "" || user.RefreshToken == "" {
		log.Info("user has no refresh session")
		metrics.AuthEvent("refresh", "incomplete_user")

		return nil, fmt.Errorf("%s: %w", op, ErrIncompleteUserRecord)
	}

	resp, err := a.tokens.RefreshTokens(ctx, user, refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrRefreshTokenInvalidOrExpired) {
			log.Info("stale or expired refresh token")
			metrics.AuthEvent("refresh", "stale_token")

			return nil, fmt.Errorf("%s: %w", op, ErrRefreshTokenInvalidOrExpired)
		}

		log.Error("failed to rotate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tokens refreshed")
	metrics.AuthEvent("refresh", "ok")

	return resp, nil
}
