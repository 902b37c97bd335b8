package http

import (
	"context"
	"log/slog"
	"net/http"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "citiesmanager/docs"
)

const (
	sessionName   = "session"
	sessionUserID = "user_id"
)

type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.AuthenticationResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthenticationResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, accessToken, refreshToken string) (*models.AuthenticationResponse, error)
}

type CityService interface {
	AddCity(ctx context.Context, name string) (models.City, error)
	GetCity(ctx context.Context, cityID uuid.UUID) (models.City, error)
	ListCities(ctx context.Context) ([]models.City, error)
	UpdateCity(ctx context.Context, city models.City) (models.City, error)
	DeleteCity(ctx context.Context, cityID uuid.UUID) error
}

// TokenValidator recovers identity from a bearer token on routes that are
// not behind the jwt middleware.
type TokenValidator interface {
	ValidateIgnoringExpiry(token string) (*models.TokenClaims, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log         *slog.Logger
	AuthService AuthService
	CityService CityService
	tokens      TokenValidator
	checkers    []HealthChecker
}

func NewRouter(log *slog.Logger, authService AuthService, cityService CityService, tokens TokenValidator, checkers ...HealthChecker) *Routers {
	return &Routers{
		log:         log,
		AuthService: authService,
		CityService: cityService,
		tokens:      tokens,
		checkers:    checkers,
	}
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Description Проверяет доступность хранилищ
// @Tags system
// @Produce json
// @Success 200 {object} response.Response "Сервис доступен"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	for _, checker := range r.checkers {
		if err := checker.HealthCheck(c.Request().Context()); err != nil {
			r.log.Error("health check failed", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails("unavailable", "storage is not reachable"))
		}
	}

	return c.JSON(http.StatusOK, response.Response{Status: "ok", Message: "healthy"})
}

func (r *Routers) signIn(c echo.Context, userID uuid.UUID) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		r.log.Warn("session unavailable", sl.Err(err))
		return
	}

	sess.Values[sessionUserID] = userID.String()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to save session", sl.Err(err))
	}
}

func (r *Routers) signOut(c echo.Context) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		r.log.Warn("session unavailable", sl.Err(err))
		return
	}

	delete(sess.Values, sessionUserID)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to clear session", sl.Err(err))
	}
}
