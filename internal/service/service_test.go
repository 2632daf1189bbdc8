package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/config"
	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/events"
	"github.com/spec-kit/bedbook/internal/repository/memory"
)

type testEnv struct {
	store      *memory.Store
	dispatcher events.Dispatcher
	recorder   *eventRecorder
	auth       *AuthService
	catalog    *CatalogService
	booking    *BookingService
	management *ManagementService
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) ofType(eventType events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, event := range r.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		Auth:       config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Management: config.ManagementConfig{MaxBedsPerBatch: 50},
	}
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventPasswordReset,
		events.EventHospitalCreated,
		events.EventBedsAdded,
		events.EventBedBooked,
	} {
		dispatcher.Subscribe(eventType, recorder.handle)
	}

	sessions := auth.NewSessionManager(auth.NewTokenManager("secret", time.Hour), auth.NewMemorySessionStore())
	catalog := NewCatalogService(store.Hospitals(), store.Beds())
	return &testEnv{
		store:      store,
		dispatcher: dispatcher,
		recorder:   recorder,
		auth: NewAuthService(cfg, AuthDependencies{
			UserRepo:   store.Users(),
			Sessions:   sessions,
			Dispatcher: dispatcher,
		}),
		catalog: catalog,
		booking: NewBookingService(store.Beds(), dispatcher),
		management: NewManagementService(ManagementDependencies{
			HospitalRepo:    store.Hospitals(),
			BedRepo:         store.Beds(),
			Catalog:         catalog,
			Dispatcher:      dispatcher,
			MaxBedsPerBatch: cfg.Management.MaxBedsPerBatch,
		}),
	}
}

func (e *testEnv) managementIdentity(t *testing.T) *domain.Identity {
	t.Helper()
	_, err := e.auth.EnsureManagementUser(context.Background(), "management", "management123")
	require.NoError(t, err)
	identity, err := e.auth.Authenticate(context.Background(), "management", "management123")
	require.NoError(t, err)
	return &identity
}

func (e *testEnv) userIdentity(t *testing.T, username string) *domain.Identity {
	t.Helper()
	user, err := e.auth.Register(context.Background(), username, "pw")
	require.NoError(t, err)
	identity := user.Identity()
	return &identity
}

func (e *testEnv) hospitalWithBeds(t *testing.T, name, city, bedType string, count int) (*domain.Hospital, []domain.Bed) {
	t.Helper()
	mgmt := e.managementIdentity(t)
	hospital, err := e.management.AddHospital(context.Background(), mgmt, name, city)
	require.NoError(t, err)
	if count == 0 {
		return hospital, nil
	}
	beds, err := e.management.AddBeds(context.Background(), mgmt, hospital.ID, bedType, count)
	require.NoError(t, err)
	return hospital, beds
}
