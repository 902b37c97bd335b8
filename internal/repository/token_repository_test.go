package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"citiesmanager/internal/repository"
	"citiesmanager/internal/storage"
	redisapp "citiesmanager/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return redisapp.Wrap(db), mock
}

func setupRepo() (*repository.RedisTokenRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisTokenRepo(db), mock
}

func sessionValue(t *testing.T, token string, exp time.Time) []byte {
	t.Helper()

	raw, err := json.Marshal(struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}{token, exp.UTC()})
	require.NoError(t, err)

	return raw
}

func TestSaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupRepo()
	userID := uuid.New()
	token := "test_token"
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	key := repository.RefreshTokenKey(userID)

	t.Run("successful save", func(t *testing.T) {
		mock.ExpectSetArgs(key, sessionValue(t, token, exp), redis.SetArgs{ExpireAt: exp}).SetVal("OK")
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSetArgs(key, sessionValue(t, token, exp), redis.SetArgs{ExpireAt: exp}).SetErr(redis.ErrClosed)
		err := repo.SaveRefreshToken(ctx, userID, token, exp)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupRepo()
	userID := uuid.New()
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	key := repository.RefreshTokenKey(userID)

	t.Run("session exists", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(string(sessionValue(t, "test_token", exp)))
		token, gotExp, err := repo.GetRefreshToken(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "test_token", token)
		assert.True(t, exp.Equal(gotExp))
	})

	t.Run("no session", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()
		_, _, err := repo.GetRefreshToken(ctx, userID)
		assert.ErrorIs(t, err, storage.ErrNoSession)
	})

	t.Run("corrupted value", func(t *testing.T) {
		mock.ExpectGet(key).SetVal("not json")
		_, _, err := repo.GetRefreshToken(ctx, userID)
		assert.Error(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.ErrClosed)
		_, _, err := repo.GetRefreshToken(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupRepo()
	userID := uuid.New()
	key := repository.RefreshTokenKey(userID)

	t.Run("successful delete", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		err := repo.DeleteRefreshToken(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectDel(key).SetErr(redis.ErrClosed)
		err := repo.DeleteRefreshToken(ctx, userID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenKey(t *testing.T) {
	id := uuid.MustParse("bcee3462-1512-4fc3-98cf-dbfbccf1e919")
	assert.Equal(t, "refresh:bcee3462-1512-4fc3-98cf-dbfbccf1e919", repository.RefreshTokenKey(id))
}
