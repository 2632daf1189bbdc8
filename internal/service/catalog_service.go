package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/repository"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// CatalogService serves read-only hospital and bed listings.
type CatalogService struct {
	hospitals repository.HospitalRepository
	beds      repository.BedRepository
}

// CatalogOverview is the hospital listing with its city filter options.
type CatalogOverview struct {
	Hospitals    []domain.Hospital
	Cities       []string
	SelectedCity *string
}

// NewCatalogService constructs the service.
func NewCatalogService(hospitals repository.HospitalRepository, beds repository.BedRepository) *CatalogService {
	return &CatalogService{hospitals: hospitals, beds: beds}
}

// ListCities returns the distinct hospital cities in ascending order.
func (s *CatalogService) ListCities(ctx context.Context) ([]string, error) {
	return s.hospitals.ListCities(ctx)
}

// ListHospitals returns all hospitals, or those whose city equals city exactly.
// A nil or empty city means no filter.
func (s *CatalogService) ListHospitals(ctx context.Context, city *string) ([]domain.Hospital, error) {
	return s.hospitals.List(ctx, normalizeCity(city))
}

// GetHospital returns the hospital with its beds.
func (s *CatalogService) GetHospital(ctx context.Context, id int64) (*domain.Hospital, error) {
	hospital, err := s.hospitals.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("hospital", map[string]any{"hospital_id": id})
	}
	if err != nil {
		return nil, err
	}
	beds, err := s.beds.ListByHospital(ctx, id)
	if err != nil {
		return nil, err
	}
	hospital.Beds = beds
	return hospital, nil
}

// Overview lists hospitals for the optional city together with every known city.
func (s *CatalogService) Overview(ctx context.Context, city *string) (*CatalogOverview, error) {
	city = normalizeCity(city)
	cities, err := s.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	hospitals, err := s.hospitals.List(ctx, city)
	if err != nil {
		return nil, err
	}
	return &CatalogOverview{Hospitals: hospitals, Cities: cities, SelectedCity: city}, nil
}

func normalizeCity(city *string) *string {
	if city == nil || *city == "" {
		return nil
	}
	return city
}
