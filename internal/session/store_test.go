package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sms-portal/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := &Session{ID: "abc", User: models.User{ID: "u1"}, Token: "tok"}
	require.NoError(t, store.Put(ctx, s, time.Hour))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ID: "abc", User: models.User{ID: "u1"}, Token: "tok"}, time.Minute))

	current = current.Add(2 * time.Minute)
	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteAbsent(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}
