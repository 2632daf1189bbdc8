package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/persistence"
)

// HospitalRepository manages hospital persistence.
type HospitalRepository interface {
	// Create inserts the hospital, returning ErrDuplicate when the name is taken.
	Create(ctx context.Context, hospital *domain.Hospital) error
	GetByID(ctx context.Context, id int64) (*domain.Hospital, error)
	// List returns every hospital, or only those in city when it is non-nil.
	List(ctx context.Context, city *string) ([]domain.Hospital, error)
	ListCities(ctx context.Context) ([]string, error)
}

type hospitalRepository struct {
	db persistence.DB
}

// NewHospitalRepository builds the repository.
func NewHospitalRepository(db persistence.DB) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *domain.Hospital) error {
	const query = `
        INSERT INTO hospitals (name, city)
        VALUES ($1, $2)
        ON CONFLICT (name) DO NOTHING
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, hospital.Name, hospital.City).Scan(&hospital.ID, &hospital.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) || hasPgCode(err, pgUniqueViolation) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) GetByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	const query = `
        SELECT id, name, city, created_at
        FROM hospitals WHERE id=$1`

	var hospital domain.Hospital
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.City,
		&hospital.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) List(ctx context.Context, city *string) ([]domain.Hospital, error) {
	query := `
        SELECT id, name, city, created_at
        FROM hospitals`
	args := []any{}
	if city != nil {
		query += ` WHERE city=$1`
		args = append(args, *city)
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	result := []domain.Hospital{}
	for rows.Next() {
		var hospital domain.Hospital
		if err := rows.Scan(&hospital.ID, &hospital.Name, &hospital.City, &hospital.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, hospital)
	}
	return result, rows.Err()
}

func (r *hospitalRepository) ListCities(ctx context.Context) ([]string, error) {
	const query = `
        SELECT DISTINCT city COLLATE "C" AS city
        FROM hospitals
        ORDER BY 1`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}
