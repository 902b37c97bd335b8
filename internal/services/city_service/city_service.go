package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/logger/sl"
	"citiesmanager/internal/repository"
	"citiesmanager/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCityNotFound      = errors.New("city not found")
	ErrCityAlreadyExists = errors.New("city already exists")
)

type CityService struct {
	log  *slog.Logger
	repo repository.CityRepository
}

func NewCityService(log *slog.Logger, repo repository.CityRepository) *CityService {
	return &CityService{log: log, repo: repo}
}

func (s *CityService) AddCity(ctx context.Context, name string) (models.City, error) {
	const op = "services.city_service.AddCity"

	log := s.log.With(slog.String("op", op))

	name = strings.TrimSpace(name)
	if name == "" {
		return models.City{}, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		log.Error("failed to check city name", sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	if exists {
		return models.City{}, fmt.Errorf("%s: %w", op, ErrCityAlreadyExists)
	}

	city, err := s.repo.CreateCity(ctx, models.City{ID: uuid.New(), Name: name})
	if err != nil {
		if errors.Is(err, storage.ErrCityExists) {
			return models.City{}, fmt.Errorf("%s: %w", op, ErrCityAlreadyExists)
		}

		log.Error("failed to create city", sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("city created", slog.String("city_id", city.ID.String()))

	return city, nil
}

func (s *CityService) GetCity(ctx context.Context, cityID uuid.UUID) (models.City, error) {
	const op = "services.city_service.GetCity"

	if cityID == uuid.Nil {
		return models.City{}, fmt.Errorf("%s: %w: empty id", op, ErrInvalidInput)
	}

	city, err := s.repo.CityByID(ctx, cityID)
	if err != nil {
		if errors.Is(err, storage.ErrCityNotFound) {
			return models.City{}, fmt.Errorf("%s: %w", op, ErrCityNotFound)
		}

		s.log.Error("failed to get city", slog.String("op", op), sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	return city, nil
}

func (s *CityService) ListCities(ctx context.Context) ([]models.City, error) {
	const op = "services.city_service.ListCities"

	cities, err := s.repo.Cities(ctx)
	if err != nil {
		s.log.Error("failed to list cities", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cities, nil
}

// UpdateCity renames a city. Keeping the same name, or changing only its
// case, is not a conflict.
func (s *CityService) UpdateCity(ctx context.Context, city models.City) (models.City, error) {
	const op = "services.city_service.UpdateCity"

	log := s.log.With(
		slog.String("op", op),
		slog.String("city_id", city.ID.String()),
	)

	city.Name = strings.TrimSpace(city.Name)
	if city.ID == uuid.Nil || city.Name == "" {
		return models.City{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByID(ctx, city.ID)
	if err != nil {
		log.Error("failed to check city", sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return models.City{}, fmt.Errorf("%s: %w", op, ErrCityNotFound)
	}

	holder, err := s.repo.CityByName(ctx, city.Name)
	switch {
	case err == nil && holder.ID != city.ID:
		return models.City{}, fmt.Errorf("%s: %w", op, ErrCityAlreadyExists)
	case err != nil && !errors.Is(err, storage.ErrCityNotFound):
		log.Error("failed to check city name", sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateCity(ctx, city)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrCityNotFound):
			return models.City{}, fmt.Errorf("%s: %w", op, ErrCityNotFound)
		case errors.Is(err, storage.ErrCityExists):
			return models.City{}, fmt.Errorf("%s: %w", op, ErrCityAlreadyExists)
		}

		log.Error("failed to update city", sl.Err(err))
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("city updated")

	return updated, nil
}

func (s *CityService) DeleteCity(ctx context.Context, cityID uuid.UUID) error {
	const op = "services.city_service.DeleteCity"

	if err := s.repo.DeleteCity(ctx, cityID); err != nil {
		if errors.Is(err, storage.ErrCityNotFound) {
			return fmt.Errorf("%s: %w", op, ErrCityNotFound)
		}

		s.log.Error("failed to delete city", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("city deleted", slog.String("op", op), slog.String("city_id", cityID.String()))

	return nil
}
