package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore owns password hashing and decides where refresh sessions
// live: on the user record, or in the token repository when one is set.
type CredentialStore struct {
	users  UserRepository
	tokens TokenRepository
	cost   int
}

type CredentialOption func(*CredentialStore)

// WithTokenRepository moves refresh sessions out of the user record.
func WithTokenRepository(tokens TokenRepository) CredentialOption {
	return func(s *CredentialStore) {
		s.tokens = tokens
	}
}

func WithBcryptCost(cost int) CredentialOption {
	return func(s *CredentialStore) {
		s.cost = cost
	}
}

func NewCredentialStore(users UserRepository, opts ...CredentialOption) *CredentialStore {
	s := &CredentialStore{
		users: users,
		cost:  bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateUser hashes the password and stores the user. The returned record
// carries the generated id.
func (s *CredentialStore) CreateUser(ctx context.Context, in models.RegisterInput) (models.User, error) {
	const op = "repository.credentials.CreateUser"

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	user := models.User{
		Name:     in.Name,
		Email:    strings.TrimSpace(in.Email),
		Phone:    in.Phone,
		Password: hash,
	}

	id, err := s.users.SaveUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	return user, nil
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "repository.credentials.FindByEmail"

	user, err := s.users.User(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachSession(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *CredentialStore) FindByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "repository.credentials.FindByID"

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.attachSession(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// VerifyPassword returns the user when the password matches. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *CredentialStore) VerifyPassword(ctx context.Context, email, password string) (models.User, error) {
	const op = "repository.credentials.VerifyPassword"

	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidCredentials)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidCredentials)
	}

	return user, nil
}

func (s *CredentialStore) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	const op = "repository.credentials.UpdateRefreshToken"

	var err error
	switch {
	case s.tokens == nil:
		err = s.users.UpdateRefreshToken(ctx, userID, token, expiresAt)
	case token == "":
		err = s.tokens.DeleteRefreshToken(ctx, userID)
	default:
		err = s.tokens.SaveRefreshToken(ctx, userID, token, expiresAt)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *CredentialStore) attachSession(ctx context.Context, user *models.User) error {
	if s.tokens == nil {
		return nil
	}

	token, expiresAt, err := s.tokens.GetRefreshToken(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			user.RefreshToken, user.RefreshTokenExpiration = "", time.Time{}
			return nil
		}
		return err
	}

	user.RefreshToken, user.RefreshTokenExpiration = token, expiresAt

	return nil
}
