package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/events"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

func TestBookingService_BookBed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hospital, beds := env.hospitalWithBeds(t, "GenCity Hospital", "Metropolis", "ICU", 2)
	alice := env.userIdentity(t, "alice")
	bob := env.userIdentity(t, "bob")

	fixed := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)
	env.booking.now = func() time.Time { return fixed }

	result, err := env.booking.BookBed(ctx, alice, beds[0].ID)
	require.NoError(t, err)
	assert.Equal(t, hospital.ID, result.HospitalID)
	assert.False(t, result.Bed.Available)
	require.NotNil(t, result.Bed.BookedBy)
	assert.Equal(t, alice.UserID, *result.Bed.BookedBy)
	require.NotNil(t, result.Bed.BookingTime)
	assert.Equal(t, fixed.Truncate(time.Microsecond), *result.Bed.BookingTime)
	assert.True(t, result.Bed.Consistent())

	_, err = env.booking.BookBed(ctx, bob, beds[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)

	// the original booking is untouched
	detail, err := env.catalog.GetHospital(ctx, hospital.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, *detail.Beds[0].BookedBy)
	assert.True(t, detail.Beds[1].Available)

	booked := env.recorder.ofType(events.EventBedBooked)
	require.Len(t, booked, 1)
	payload, ok := booked[0].Payload.(events.BedBookedPayload)
	require.True(t, ok)
	assert.Equal(t, beds[0].ID, payload.BedID)
}

func TestBookingService_BookBedErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, beds := env.hospitalWithBeds(t, "GenCity Hospital", "Metropolis", "ICU", 1)

	_, err := env.booking.BookBed(ctx, nil, beds[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	alice := env.userIdentity(t, "alice")
	_, err = env.booking.BookBed(ctx, alice, beds[0].ID+999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Empty(t, env.recorder.ofType(events.EventBedBooked))
}

func TestBookingService_ConcurrentBookingHasOneWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, beds := env.hospitalWithBeds(t, "GenCity Hospital", "Metropolis", "ICU", 1)
	bedID := beds[0].ID

	const users = 20
	identities := make([]*domain.Identity, users)
	for i := range identities {
		identities[i] = env.userIdentity(t, "user"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make([]error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = env.booking.BookBed(ctx, identities[i], bedID)
		}(i)
	}
	close(start)
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "more than one booking succeeded")
			winner = i
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
	}
	require.NotEqual(t, -1, winner)

	mine, err := env.booking.ListUserBookings(ctx, identities[winner])
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, bedID, mine[0].ID)
	assert.True(t, mine[0].Consistent())
}

func TestBookingService_ListUserBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, beds := env.hospitalWithBeds(t, "GenCity Hospital", "Metropolis", "General", 3)
	alice := env.userIdentity(t, "alice")
	bob := env.userIdentity(t, "bob")
	clock := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	env.booking.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	_, err := env.booking.BookBed(ctx, alice, beds[2].ID)
	require.NoError(t, err)
	_, err = env.booking.BookBed(ctx, alice, beds[0].ID)
	require.NoError(t, err)

	// oldest booking first
	mine, err := env.booking.ListUserBookings(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, beds[2].ID, mine[0].ID)
	assert.Equal(t, beds[0].ID, mine[1].ID)

	none, err := env.booking.ListUserBookings(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.booking.ListUserBookings(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestReservationWalkthrough(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mgmt := env.managementIdentity(t)
	hospital, err := env.management.AddHospital(ctx, mgmt, "GenCity Hospital", "Metropolis")
	require.NoError(t, err)
	_, err = env.management.AddBeds(ctx, mgmt, hospital.ID, "ICU", 2)
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	login, err := env.auth.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	city := "Metropolis"
	overview, err := env.catalog.Overview(ctx, &city)
	require.NoError(t, err)
	require.Len(t, overview.Hospitals, 1)

	detail, err := env.catalog.GetHospital(ctx, overview.Hospitals[0].ID)
	require.NoError(t, err)
	require.Len(t, detail.Beds, 2)

	_, err = env.booking.BookBed(ctx, &login.Identity, detail.Beds[0].ID)
	require.NoError(t, err)

	detail, err = env.catalog.GetHospital(ctx, hospital.ID)
	require.NoError(t, err)
	available := 0
	for _, bed := range detail.Beds {
		if bed.Available {
			available++
		}
	}
	assert.Equal(t, 1, available)

	mine, err := env.booking.ListUserBookings(ctx, &login.Identity)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
