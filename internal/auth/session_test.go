package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bedbook/internal/domain"
)

func newRedisStore(t *testing.T) (SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, "test:session:"), mr
}

func TestSessionManager_Lifecycle(t *testing.T) {
	stores := map[string]SessionStore{
		"memory": NewMemorySessionStore(),
	}
	redisStore, _ := newRedisStore(t)
	stores["redis"] = redisStore

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			manager := NewSessionManager(NewTokenManager("secret", time.Hour), store)
			identity := domain.Identity{UserID: 9, Username: "alice", IsManagement: true}

			token, session, err := manager.Create(ctx, identity)
			require.NoError(t, err)
			assert.NotEmpty(t, session.ID)

			resolved, err := manager.Resolve(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, identity, resolved.Identity)
			assert.Equal(t, session.ID, resolved.ID)

			require.NoError(t, manager.Destroy(ctx, token))
			_, err = manager.Resolve(ctx, token)
			assert.ErrorIs(t, err, ErrSessionNotFound)

			// destroying twice is harmless
			assert.NoError(t, manager.Destroy(ctx, token))
		})
	}
}

func TestSessionManager_RejectsGarbageToken(t *testing.T) {
	manager := NewSessionManager(NewTokenManager("secret", time.Hour), NewMemorySessionStore())

	_, err := manager.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, manager.Destroy(context.Background(), "not-a-jwt"))
}

func TestRedisSessionStore_Expires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "abc", Identity: domain.Identity{UserID: 1}}, time.Minute))
	assert.True(t, mr.Exists("test:session:abc"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expires(t *testing.T) {
	store := NewMemorySessionStore().(*memorySessionStore)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "abc"}, time.Minute))
	_, err := store.Get(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
