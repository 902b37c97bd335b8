package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	"citiesmanager/internal/services/auth"
	"citiesmanager/internal/transport/http/dto/request"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создание аккаунта и вход в систему. Возвращает пару токенов.
// @Tags account
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Данные для регистрации"
// @Success 200 {object} models.AuthenticationResponse "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Неверные данные или email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/account/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RegisterRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	resp, err := r.AuthService.Register(c.Request().Context(), models.RegisterInput{
		Name:     req.PersonName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyRegistered) {
			return c.JSON(http.StatusBadRequest, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	r.signIn(c, resp.UserID)

	return c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход в систему по email и паролю. Выдает новую пару токенов.
// @Tags account
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} models.AuthenticationResponse "Успешный вход"
// @Success 204 "Неполная запись пользователя"
// @Failure 400 {object} response.ErrorResponse "Неверный email или пароль"
// @Router /api/v1/account/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	resp, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, response.ErrAuthenticationFailed)
		case errors.Is(err, auth.ErrIncompleteUserRecord):
			return c.NoContent(http.StatusNoContent)
		}

		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	r.signIn(c, resp.UserID)

	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Выход из системы
// @Description Завершает сессию. Если передан токен доступа, refresh-токен пользователя отзывается.
// @Tags account
// @Success 204 "Сессия завершена"
// @Security ApiKeyAuth
// @Router /api/v1/account/logout [get]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	if token := bearerToken(c); token != "" {
		claims, err := r.tokens.ValidateIgnoringExpiry(token)
		if err != nil {
			log.Info("ignoring invalid bearer token on logout", sl.Err(err))
		} else if err := r.AuthService.Logout(c.Request().Context(), claims.UserID); err != nil {
			log.Warn("failed to revoke refresh token", sl.Err(err))
		}
	}

	r.signOut(c)

	return c.NoContent(http.StatusNoContent)
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Description Принимает токен доступа (возможно просроченный) и текущий refresh-токен. Старый refresh-токен становится недействительным.
// @Tags account
// @Accept json
// @Produce json
// @Param request body request.TokenRequest true "Текущая пара токенов"
// @Success 200 {object} models.AuthenticationResponse "Новая пара токенов"
// @Failure 400 {object} response.ErrorResponse "Недействительный токен доступа или пользователь"
// @Failure 401 {object} response.ErrorResponse "Refresh-токен недействителен или истек"
// @Router /api/v1/account/token [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.TokenRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	resp, err := r.AuthService.Refresh(c.Request().Context(), req.Token, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRefreshTokenInvalidOrExpired):
			return c.JSON(http.StatusUnauthorized, response.ErrRefreshTokenRejected)
		case errors.Is(err, auth.ErrInvalidToken):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_token", "Invalid token"))
		case errors.Is(err, auth.ErrClaimMissing):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_token", "Email claim not found"))
		case errors.Is(err, auth.ErrUserNotFound):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("user_not_found", "User not found"))
		case errors.Is(err, auth.ErrIncompleteUserRecord):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_user", "User has no active session"))
		}

		log.Error("refresh failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, resp)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
