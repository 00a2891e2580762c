package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{
		SessionID: "sid-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
		Identity:  []byte(`{"accessToken":"tok"}`),
	}

	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.SessionID, got.SessionID)
	assert.Equal(t, s.Identity, got.Identity)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreRejectsInvalidSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Create(ctx, Session{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)

	err = store.Create(ctx, Session{
		SessionID: "sid-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err)
}

func TestMemoryStoreExpiredSessionIsDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{
		SessionID: "sid-1",
		ExpiresAt: time.Now().Add(20 * time.Millisecond),
	}
	require.NoError(t, store.Create(ctx, s))

	time.Sleep(50 * time.Millisecond)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := Session{
		SessionID: "sid-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))

	require.NoError(t, store.Delete(ctx, "sid-1"))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreConcurrentDistinctKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			id, err := GenerateID()
			assert.NoError(t, err)

			s := Session{
				SessionID: id,
				ExpiresAt: time.Now().Add(time.Hour),
				Identity:  []byte{byte(n)},
			}
			assert.NoError(t, store.Create(ctx, s))

			got, err := store.Get(ctx, id)
			assert.NoError(t, err)
			if assert.NotNil(t, got) {
				assert.Equal(t, []byte{byte(n)}, got.Identity)
			}
		}(i)
	}
	wg.Wait()
}
