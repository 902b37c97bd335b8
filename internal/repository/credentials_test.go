package repository_test

import (
	"testing"
	"time"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/repository"
	"citiesmanager/internal/storage"
	"citiesmanager/internal/storage/inmemory"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fakeRegistration() models.RegisterInput {
	return models.RegisterInput{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Phone:    gofakeit.Numerify("##########"),
		Password: "secret1",
	}
}

func TestCredentialStore_CreateAndVerify(t *testing.T) {
	store := repository.NewCredentialStore(inmemory.New(), repository.WithBcryptCost(bcrypt.MinCost))
	in := fakeRegistration()

	user, err := store.CreateUser(testCtx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, []byte(in.Password), user.Password, "password must be hashed")

	t.Run("duplicate", func(t *testing.T) {
		_, err := store.CreateUser(testCtx, in)
		assert.ErrorIs(t, err, storage.ErrUserExists)
	})

	t.Run("correct password", func(t *testing.T) {
		got, err := store.VerifyPassword(testCtx, in.Email, in.Password)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := store.VerifyPassword(testCtx, in.Email, "secret2")
		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := store.VerifyPassword(testCtx, "nobody@example.com", in.Password)
		assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	})

	t.Run("refresh token on the user record", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		require.NoError(t, store.UpdateRefreshToken(testCtx, user.ID, "rt", exp))

		got, err := store.FindByID(testCtx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "rt", got.RefreshToken)
		assert.True(t, got.HasSession(time.Now()))
	})
}

func TestCredentialStore_RedisSessions(t *testing.T) {
	client, mock := NewMockClient()
	users := inmemory.New()
	store := repository.NewCredentialStore(users,
		repository.WithBcryptCost(bcrypt.MinCost),
		repository.WithTokenRepository(repository.NewRedisTokenRepo(client)),
	)

	in := fakeRegistration()
	user, err := store.CreateUser(testCtx, in)
	require.NoError(t, err)

	key := repository.RefreshTokenKey(user.ID)
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("save goes to redis", func(t *testing.T) {
		mock.ExpectSetArgs(key, sessionValue(t, "rt", exp), redis.SetArgs{ExpireAt: exp}).SetVal("OK")
		require.NoError(t, store.UpdateRefreshToken(testCtx, user.ID, "rt", exp))

		record, err := users.UserByID(testCtx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, record.RefreshToken)
	})

	t.Run("lookup attaches the session", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(string(sessionValue(t, "rt", exp)))

		got, err := store.FindByEmail(testCtx, in.Email)
		require.NoError(t, err)
		assert.Equal(t, "rt", got.RefreshToken)
		assert.True(t, exp.Equal(got.RefreshTokenExpiration))
	})

	t.Run("missing session", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()

		got, err := store.FindByID(testCtx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.RefreshToken)
	})

	t.Run("clear deletes the key", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		require.NoError(t, store.UpdateRefreshToken(testCtx, user.ID, "", time.Time{}))
	})

	t.Run("redis failure surfaces", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.ErrClosed)

		_, err := store.FindByID(testCtx, user.ID)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
