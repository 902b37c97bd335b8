package repository

import (
	"context"
	"time"

	"citiesmanager/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	User(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	// UpdateRefreshToken overwrites the user's refresh token. An empty token
	// clears it.
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}

// TokenRepository keeps one refresh session per user outside the user record.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type CityRepository interface {
	CreateCity(ctx context.Context, city models.City) (models.City, error)
	CityByID(ctx context.Context, cityID uuid.UUID) (models.City, error)
	CityByName(ctx context.Context, name string) (models.City, error)
	Cities(ctx context.Context) ([]models.City, error)
	UpdateCity(ctx context.Context, city models.City) (models.City, error)
	DeleteCity(ctx context.Context, cityID uuid.UUID) error
	ExistsByID(ctx context.Context, cityID uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
