package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/events"
	"github.com/spec-kit/bedbook/internal/repository"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// ManagementService holds the operations reserved for management users.
type ManagementService struct {
	hospitals       repository.HospitalRepository
	beds            repository.BedRepository
	catalog         *CatalogService
	dispatcher      events.Dispatcher
	maxBedsPerBatch int
}

// ManagementDependencies bundles collaborators for the management service.
type ManagementDependencies struct {
	HospitalRepo    repository.HospitalRepository
	BedRepo         repository.BedRepository
	Catalog         *CatalogService
	Dispatcher      events.Dispatcher
	MaxBedsPerBatch int
}

// NewManagementService constructs the service.
func NewManagementService(deps ManagementDependencies) *ManagementService {
	return &ManagementService{
		hospitals:       deps.HospitalRepo,
		beds:            deps.BedRepo,
		catalog:         deps.Catalog,
		dispatcher:      deps.Dispatcher,
		maxBedsPerBatch: deps.MaxBedsPerBatch,
	}
}

// Dashboard returns the hospital overview for management users.
func (s *ManagementService) Dashboard(ctx context.Context, identity *domain.Identity, city *string) (*CatalogOverview, error) {
	if err := requireManagement(identity); err != nil {
		return nil, err
	}
	return s.catalog.Overview(ctx, city)
}

// AddHospital creates a hospital with a unique name.
func (s *ManagementService) AddHospital(ctx context.Context, identity *domain.Identity, name, city string) (*domain.Hospital, error) {
	if err := requireManagement(identity); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	details := map[string]any{}
	if name == "" {
		details["name"] = "required"
	}
	if city == "" {
		details["city"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("hospital name and city required", details)
	}

	hospital := &domain.Hospital{Name: name, City: city}
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventHospitalCreated,
		Actor: actorOf(*identity),
		Payload: events.HospitalCreatedPayload{
			HospitalID: hospital.ID,
			Name:       hospital.Name,
			City:       hospital.City,
		},
	})
	return hospital, nil
}

// AddBeds creates count available beds of bedType in one all-or-nothing batch.
func (s *ManagementService) AddBeds(ctx context.Context, identity *domain.Identity, hospitalID int64, bedType string, count int) ([]domain.Bed, error) {
	if err := requireManagement(identity); err != nil {
		return nil, err
	}
	if _, err := s.hospitals.GetByID(ctx, hospitalID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hospitalNotFound(hospitalID)
		}
		return nil, err
	}
	if count <= 0 || (s.maxBedsPerBatch > 0 && count > s.maxBedsPerBatch) {
		return nil, apperrors.ErrInvalidCount.WithDetail("max", s.maxBedsPerBatch)
	}
	bedType = strings.TrimSpace(bedType)
	if bedType == "" {
		return nil, apperrors.NewValidationError("bed type required", map[string]any{"bed_type": "required"})
	}

	beds, err := s.beds.CreateBatch(ctx, hospitalID, bedType, count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, hospitalNotFound(hospitalID)
		}
		return nil, err
	}

	ids := make([]int64, 0, len(beds))
	for _, bed := range beds {
		ids = append(ids, bed.ID)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventBedsAdded,
		Actor: actorOf(*identity),
		Payload: events.BedsAddedPayload{
			HospitalID: hospitalID,
			BedType:    bedType,
			BedIDs:     ids,
		},
	})
	return beds, nil
}

func requireManagement(identity *domain.Identity) error {
	if identity == nil {
		return apperrors.ErrUnauthorized
	}
	if !identity.IsManagement {
		return apperrors.ErrForbidden
	}
	return nil
}

func hospitalNotFound(id int64) error {
	return apperrors.NewNotFound("hospital", map[string]any{"hospital_id": id})
}
