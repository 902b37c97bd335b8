package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"citiesmanager/internal/storage"
	redisapp "citiesmanager/internal/storage/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

type refreshSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SaveRefreshToken replaces the user's session. Redis drops the key at
// expiresAt.
func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	const op = "repository.token_repository.SaveRefreshToken"

	value, err := json.Marshal(refreshSession{Token: token, ExpiresAt: expiresAt.UTC()})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.Client.SetArgs(ctx, RefreshTokenKey(userID), value, redis.SetArgs{ExpireAt: expiresAt}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	const op = "repository.token_repository.GetRefreshToken"

	raw, err := r.Client.Get(ctx, RefreshTokenKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", time.Time{}, fmt.Errorf("%s: %w", op, storage.ErrNoSession)
		}
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	var session refreshSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	return session.Token, session.ExpiresAt, nil
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const op = "repository.token_repository.DeleteRefreshToken"

	if err := r.Client.Del(ctx, RefreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func RefreshTokenKey(userID uuid.UUID) string {
	return "refresh:" + userID.String()
}
