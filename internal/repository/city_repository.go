package repository

import (
	"context"
	"errors"
	"fmt"

	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type CityRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewCityRepository(db *pgxpool.Pool) *CityRepo {
	return &CityRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CityRepo) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	const op = "repository.city_repository.CreateCity"

	query, args, err := r.sb.Insert("cities").
		Columns("id", "name").
		Values(city.ID, city.Name).
		ToSql()
	if err != nil {
		return models.City{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.City{}, fmt.Errorf("%s: %w", op, storage.ErrCityExists)
		}
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	return city, nil
}

func (r *CityRepo) CityByID(ctx context.Context, cityID uuid.UUID) (models.City, error) {
	const op = "repository.city_repository.CityByID"

	return r.city(ctx, op, sq.Eq{"id": cityID})
}

func (r *CityRepo) CityByName(ctx context.Context, name string) (models.City, error) {
	const op = "repository.city_repository.CityByName"

	return r.city(ctx, op, sq.Expr("LOWER(name) = LOWER(?)", name))
}

func (r *CityRepo) city(ctx context.Context, op string, pred sq.Sqlizer) (models.City, error) {
	query, args, err := r.sb.Select("id", "name").From("cities").Where(pred).ToSql()
	if err != nil {
		return models.City{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var city models.City
	err = r.db.QueryRow(ctx, query, args...).Scan(&city.ID, &city.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.City{}, fmt.Errorf("%s: %w", op, storage.ErrCityNotFound)
		}
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	return city, nil
}

func (r *CityRepo) Cities(ctx context.Context) ([]models.City, error) {
	const op = "repository.city_repository.Cities"

	query, args, err := r.sb.Select("id", "name").From("cities").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	cities := make([]models.City, 0)
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cities, nil
}

func (r *CityRepo) UpdateCity(ctx context.Context, city models.City) (models.City, error) {
	const op = "repository.city_repository.UpdateCity"

	query, args, err := r.sb.Update("cities").
		Set("name", city.Name).
		Where(sq.Eq{"id": city.ID}).
		ToSql()
	if err != nil {
		return models.City{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return models.City{}, fmt.Errorf("%s: %w", op, storage.ErrCityExists)
		}
		return models.City{}, fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return models.City{}, fmt.Errorf("%s: %w", op, storage.ErrCityNotFound)
	}

	return city, nil
}

func (r *CityRepo) DeleteCity(ctx context.Context, cityID uuid.UUID) error {
	const op = "repository.city_repository.DeleteCity"

	query, args, err := r.sb.Delete("cities").Where(sq.Eq{"id": cityID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCityNotFound)
	}

	return nil
}

func (r *CityRepo) ExistsByID(ctx context.Context, cityID uuid.UUID) (bool, error) {
	const op = "repository.city_repository.ExistsByID"

	return r.exists(ctx, op, sq.Eq{"id": cityID})
}

func (r *CityRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	const op = "repository.city_repository.ExistsByName"

	return r.exists(ctx, op, sq.Expr("LOWER(name) = LOWER(?)", name))
}

func (r *CityRepo) exists(ctx context.Context, op string, pred sq.Sqlizer) (bool, error) {
	sub, args, err := r.sb.Select("1").From("cities").Where(pred).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
