// Package memory provides in-process repository implementations with the
// same uniqueness and booking guarantees as the Postgres ones. They back the
// service when no database is configured and drive service-level tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/repository"
)

// Store holds all tables behind a single lock.
type Store struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	usernames map[string]int64
	hospitals map[int64]domain.Hospital
	names     map[string]int64
	beds      map[int64]domain.Bed
	seq       int64
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]domain.User),
		usernames: make(map[string]int64),
		hospitals: make(map[int64]domain.Hospital),
		names:     make(map[string]int64),
		beds:      make(map[int64]domain.Bed),
		now:       time.Now,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Hospitals returns the hospital repository view of the store.
func (s *Store) Hospitals() repository.HospitalRepository { return (*hospitalRepo)(s) }

// Beds returns the bed repository view of the store.
func (s *Store) Beds() repository.BedRepository { return (*bedRepo)(s) }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return repository.ErrDuplicate
	}
	// callers may pass strings backed by reused request buffers
	user.Username = strings.Clone(user.Username)
	now := s.now()
	user.ID = s.nextID()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	s.usernames[user.Username] = user.ID
	return nil
}

func (r *userRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = s.now()
	s.users[id] = user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := s.users[id]
	return &user, nil
}

type hospitalRepo Store

func (r *hospitalRepo) Create(_ context.Context, hospital *domain.Hospital) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.names[hospital.Name]; taken {
		return repository.ErrDuplicate
	}
	hospital.Name = strings.Clone(hospital.Name)
	hospital.City = strings.Clone(hospital.City)
	hospital.ID = s.nextID()
	hospital.CreatedAt = s.now()
	stored := *hospital
	stored.Beds = nil
	s.hospitals[hospital.ID] = stored
	s.names[hospital.Name] = hospital.ID
	return nil
}

func (r *hospitalRepo) GetByID(_ context.Context, id int64) (*domain.Hospital, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	hospital, ok := s.hospitals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &hospital, nil
}

func (r *hospitalRepo) List(_ context.Context, city *string) ([]domain.Hospital, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.Hospital{}
	for _, hospital := range s.hospitals {
		if city != nil && hospital.City != *city {
			continue
		}
		result = append(result, hospital)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *hospitalRepo) ListCities(_ context.Context) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.hospitals))
	cities := []string{}
	for _, hospital := range s.hospitals {
		if _, dup := seen[hospital.City]; dup {
			continue
		}
		seen[hospital.City] = struct{}{}
		cities = append(cities, hospital.City)
	}
	sort.Strings(cities)
	return cities, nil
}

type bedRepo Store

func (r *bedRepo) CreateBatch(_ context.Context, hospitalID int64, bedType string, count int) ([]domain.Bed, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hospitals[hospitalID]; !ok {
		return nil, pgx.ErrNoRows
	}
	bedType = strings.Clone(bedType)
	now := s.now()
	beds := make([]domain.Bed, 0, count)
	for i := 0; i < count; i++ {
		bed := domain.Bed{
			ID:         s.nextID(),
			HospitalID: hospitalID,
			BedType:    bedType,
			Available:  true,
			CreatedAt:  now,
		}
		s.beds[bed.ID] = bed
		beds = append(beds, bed)
	}
	return beds, nil
}

func (r *bedRepo) GetByID(_ context.Context, id int64) (*domain.Bed, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	bed, ok := s.beds[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &bed, nil
}

func (r *bedRepo) ListByHospital(_ context.Context, hospitalID int64) ([]domain.Bed, error) {
	return (*Store)(r).filterBeds(func(b domain.Bed) bool { return b.HospitalID == hospitalID }, byID), nil
}

func (r *bedRepo) ListByUser(_ context.Context, userID int64) ([]domain.Bed, error) {
	return (*Store)(r).filterBeds(func(b domain.Bed) bool { return b.BookedBy != nil && *b.BookedBy == userID }, byBookingTime), nil
}

func (r *bedRepo) Book(_ context.Context, bedID, userID int64, at time.Time) (*domain.Bed, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	bed, ok := s.beds[bedID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if !bed.Available {
		return nil, repository.ErrBedUnavailable
	}
	bookedBy := userID
	bookedAt := at
	bed.Available = false
	bed.BookedBy = &bookedBy
	bed.BookingTime = &bookedAt
	s.beds[bedID] = bed
	return &bed, nil
}

// byID orders like ORDER BY id.
func byID(a, b domain.Bed) bool { return a.ID < b.ID }

// byBookingTime orders like ORDER BY booking_time, id.
func byBookingTime(a, b domain.Bed) bool {
	if !a.BookingTime.Equal(*b.BookingTime) {
		return a.BookingTime.Before(*b.BookingTime)
	}
	return a.ID < b.ID
}

func (s *Store) filterBeds(keep func(domain.Bed) bool, less func(a, b domain.Bed) bool) []domain.Bed {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.Bed{}
	for _, bed := range s.beds {
		if keep(bed) {
			result = append(result, bed)
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}
