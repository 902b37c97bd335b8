package inmemory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/storage"

	"github.com/google/uuid"
)

// SeedCities mirrors the rows inserted by the postgres migrations.
var SeedCities = []models.City{
	{ID: uuid.MustParse("08a84aab-9084-4179-9e9d-9d43de5546fc"), Name: "Kyiv"},
	{ID: uuid.MustParse("0edbd081-15ef-4679-a5f4-5d000aaf2b4e"), Name: "Prague"},
	{ID: uuid.MustParse("8467e78c-bf7d-443b-9e7d-e07848e6a6a4"), Name: "Amsterdam"},
	{ID: uuid.MustParse("8f8c9266-193d-4a63-ac50-1db0954c9c5e"), Name: "Chicago"},
	{ID: uuid.MustParse("b9bb7cd6-7969-4fc0-8dae-b7ef7c9c6580"), Name: "Berlin"},
	{ID: uuid.MustParse("bcee3462-1512-4fc3-98cf-dbfbccf1e919"), Name: "London"},
	{ID: uuid.MustParse("cdea0ec1-4f3a-4c0a-8804-a9acc278c78b"), Name: "Atlanta"},
	{ID: uuid.MustParse("d9ee6f5f-5dbe-4356-8c78-af1532ac8fbc"), Name: "Bangkok"},
}

// Storage keeps users and cities in process memory. It satisfies the same
// repository contracts as the postgres implementation.
type Storage struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]models.User
	emails map[string]uuid.UUID
	cities map[uuid.UUID]models.City
}

func New(cities ...models.City) *Storage {
	s := &Storage{
		users:  make(map[uuid.UUID]models.User),
		emails: make(map[string]uuid.UUID),
		cities: make(map[uuid.UUID]models.City, len(cities)),
	}

	for _, c := range cities {
		s.cities[c.ID] = c
	}

	return s
}

func (s *Storage) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Storage) SaveUser(_ context.Context, user models.User) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.emails[key]; ok {
		return uuid.Nil, storage.ErrUserExists
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.RegistrationDate = time.Now().UTC()
	user.Password = slices.Clone(user.Password)

	s.users[user.ID] = user
	s.emails[key] = user.ID

	return user.ID, nil
}

func (s *Storage) User(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return s.users[id], nil
}

func (s *Storage) UserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return user, nil
}

func (s *Storage) UpdateRefreshToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}

	user.RefreshToken = token
	user.RefreshTokenExpiration = expiresAt
	s.users[userID] = user

	return nil
}

func (s *Storage) CreateCity(_ context.Context, city models.City) (models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(city.Name, uuid.Nil) {
		return models.City{}, storage.ErrCityExists
	}

	s.cities[city.ID] = city

	return city, nil
}

func (s *Storage) CityByID(_ context.Context, cityID uuid.UUID) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	city, ok := s.cities[cityID]
	if !ok {
		return models.City{}, storage.ErrCityNotFound
	}

	return city, nil
}

func (s *Storage) CityByName(_ context.Context, name string) (models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cities {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}

	return models.City{}, storage.ErrCityNotFound
}

func (s *Storage) Cities(_ context.Context) ([]models.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cities := make([]models.City, 0, len(s.cities))
	for _, c := range s.cities {
		cities = append(cities, c)
	}

	slices.SortFunc(cities, func(a, b models.City) int {
		return strings.Compare(a.Name, b.Name)
	})

	return cities, nil
}

func (s *Storage) UpdateCity(_ context.Context, city models.City) (models.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cities[city.ID]; !ok {
		return models.City{}, storage.ErrCityNotFound
	}

	if s.nameTaken(city.Name, city.ID) {
		return models.City{}, storage.ErrCityExists
	}

	s.cities[city.ID] = city

	return city, nil
}

func (s *Storage) DeleteCity(_ context.Context, cityID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cities[cityID]; !ok {
		return storage.ErrCityNotFound
	}

	delete(s.cities, cityID)

	return nil
}

func (s *Storage) ExistsByID(_ context.Context, cityID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.cities[cityID]

	return ok, nil
}

func (s *Storage) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nameTaken(name, uuid.Nil), nil
}

// nameTaken must be called with s.mu held.
func (s *Storage) nameTaken(name string, except uuid.UUID) bool {
	for id, c := range s.cities {
		if id != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}

	return false
}
