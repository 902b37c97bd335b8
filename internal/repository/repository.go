package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository groups the postgres-backed repositories over one pool.
type Repository struct {
	User UserRepository
	City CityRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		City: NewCityRepository(db),
	}
}
