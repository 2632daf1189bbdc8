package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/events"
	"github.com/spec-kit/bedbook/internal/repository"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// BookingService performs the available-to-booked bed transition.
type BookingService struct {
	beds       repository.BedRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// BookingResult is the booked bed and the hospital it belongs to.
type BookingResult struct {
	Bed        domain.Bed
	HospitalID int64
}

// NewBookingService constructs the service.
func NewBookingService(beds repository.BedRepository, dispatcher events.Dispatcher) *BookingService {
	return &BookingService{beds: beds, dispatcher: dispatcher, now: time.Now}
}

// BookBed books the bed for the caller. At most one call per bed ever
// succeeds; the rest get ErrAlreadyBooked. Failures are never retried.
func (s *BookingService) BookBed(ctx context.Context, identity *domain.Identity, bedID int64) (*BookingResult, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}

	// Postgres keeps microseconds.
	at := s.now().UTC().Truncate(time.Microsecond)
	bed, err := s.beds.Book(ctx, bedID, identity.UserID, at)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, apperrors.NewNotFound("bed", map[string]any{"bed_id": bedID})
	case errors.Is(err, repository.ErrBedUnavailable):
		return nil, apperrors.ErrAlreadyBooked
	case err != nil:
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventBedBooked,
		Actor: actorOf(*identity),
		Payload: events.BedBookedPayload{
			BedID:       bed.ID,
			HospitalID:  bed.HospitalID,
			BedType:     bed.BedType,
			BookingTime: at,
		},
	})
	return &BookingResult{Bed: *bed, HospitalID: bed.HospitalID}, nil
}

// ListUserBookings returns the beds booked by the caller.
func (s *BookingService) ListUserBookings(ctx context.Context, identity *domain.Identity) ([]domain.Bed, error) {
	if identity == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.beds.ListByUser(ctx, identity.UserID)
}
