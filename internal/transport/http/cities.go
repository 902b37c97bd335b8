package http

import (
	"errors"
	"log/slog"
	"net/http"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	services "citiesmanager/internal/services/city_service"
	"citiesmanager/internal/transport/http/dto"
	"citiesmanager/internal/transport/http/dto/request"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetCities godoc
// @Summary Список городов
// @Tags cities
// @Produce json
// @Success 200 {array} dto.CityResponse "Все города"
// @Failure 401 {object} response.ErrorResponse "Требуется авторизация"
// @Security ApiKeyAuth
// @Router /api/v1/cities [get]
func (r *Routers) GetCities(c echo.Context) error {
	cities, err := r.CityService.ListCities(c.Request().Context())
	if err != nil {
		return r.cityError(c, "http.routers.GetCities", err)
	}

	return c.JSON(http.StatusOK, dto.ToCityResponses(cities))
}

// GetCity godoc
// @Summary Получение города
// @Tags cities
// @Produce json
// @Param id path string true "UUID города" format(uuid)
// @Success 200 {object} dto.CityResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный UUID"
// @Failure 404 {object} response.ErrorResponse "Город не найден"
// @Security ApiKeyAuth
// @Router /api/v1/cities/{id} [get]
func (r *Routers) GetCity(c echo.Context) error {
	const op = "http.routers.GetCity"

	city, err := r.cityFromPath(c)
	if err != nil {
		return r.cityError(c, op, err)
	}

	return c.JSON(http.StatusOK, dto.ToCityResponse(city))
}

// PostCity godoc
// @Summary Добавление города
// @Tags cities
// @Accept json
// @Produce json
// @Param request body request.CityAddRequest true "Название города"
// @Success 201 {object} dto.CityResponse "Город создан"
// @Failure 400 {object} response.ErrorResponse "Неверные данные"
// @Failure 409 {object} response.ErrorResponse "Город уже существует"
// @Security ApiKeyAuth
// @Router /api/v1/cities [post]
func (r *Routers) PostCity(c echo.Context) error {
	const op = "http.routers.PostCity"

	var req request.CityAddRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	city, err := r.CityService.AddCity(c.Request().Context(), req.Name)
	if err != nil {
		return r.cityError(c, op, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, c.Echo().Reverse("cities.v1.get", city.ID))

	return c.JSON(http.StatusCreated, dto.ToCityResponse(city))
}

// PutCity godoc
// @Summary Изменение города
// @Tags cities
// @Accept json
// @Produce json
// @Param id path string true "UUID города" format(uuid)
// @Param request body request.CityUpdateRequest true "Новые данные"
// @Success 200 {object} dto.CityResponse "Город изменен"
// @Failure 400 {object} response.ErrorResponse "Неверные данные или id не совпадает"
// @Failure 404 {object} response.ErrorResponse "Город не найден"
// @Failure 409 {object} response.ErrorResponse "Название уже занято"
// @Security ApiKeyAuth
// @Router /api/v1/cities/{id} [put]
func (r *Routers) PutCity(c echo.Context) error {
	const op = "http.routers.PutCity"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return r.cityError(c, op, services.ErrInvalidInput)
	}

	var req request.CityUpdateRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if req.ID != id {
		return c.JSON(http.StatusBadRequest, response.ErrIDMismatch)
	}

	city, err := r.CityService.UpdateCity(c.Request().Context(), models.City{ID: req.ID, Name: req.Name})
	if err != nil {
		return r.cityError(c, op, err)
	}

	return c.JSON(http.StatusOK, dto.ToCityResponse(city))
}

// DeleteCity godoc
// @Summary Удаление города
// @Tags cities
// @Param id path string true "UUID города" format(uuid)
// @Success 204 "Город удален"
// @Failure 404 {object} response.ErrorResponse "Город не найден"
// @Security ApiKeyAuth
// @Router /api/v1/cities/{id} [delete]
func (r *Routers) DeleteCity(c echo.Context) error {
	const op = "http.routers.DeleteCity"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return r.cityError(c, op, services.ErrInvalidInput)
	}

	if err := r.CityService.DeleteCity(c.Request().Context(), id); err != nil {
		return r.cityError(c, op, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCityNames godoc
// @Summary Список названий городов
// @Tags cities
// @Produce json
// @Success 200 {array} string "Названия городов"
// @Security ApiKeyAuth
// @Router /api/v2/cities [get]
func (r *Routers) GetCityNames(c echo.Context) error {
	cities, err := r.CityService.ListCities(c.Request().Context())
	if err != nil {
		return r.cityError(c, "http.routers.GetCityNames", err)
	}

	return c.JSON(http.StatusOK, dto.ToCityNames(cities))
}

// GetCityName godoc
// @Summary Название города
// @Tags cities
// @Produce json
// @Param id path string true "UUID города" format(uuid)
// @Success 200 {string} string "Название города"
// @Failure 404 {object} response.ErrorResponse "Город не найден"
// @Security ApiKeyAuth
// @Router /api/v2/cities/{id} [get]
func (r *Routers) GetCityName(c echo.Context) error {
	const op = "http.routers.GetCityName"

	city, err := r.cityFromPath(c)
	if err != nil {
		return r.cityError(c, op, err)
	}

	return c.JSON(http.StatusOK, city.Name)
}

func (r *Routers) cityFromPath(c echo.Context) (models.City, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return models.City{}, services.ErrInvalidInput
	}

	return r.CityService.GetCity(c.Request().Context(), id)
}

func (r *Routers) cityError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	case errors.Is(err, services.ErrCityNotFound):
		return c.JSON(http.StatusNotFound, response.ErrCityNotFound)
	case errors.Is(err, services.ErrCityAlreadyExists):
		return c.JSON(http.StatusConflict, response.ErrCityAlreadyExists)
	}

	r.log.Error("city request failed", slog.String("op", op), sl.Err(err))

	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}
