package rsvp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

func attendee(uid string) *identity.Identity {
	return &identity.Identity{UID: uid}
}

func TestSet_UpsertKeepsOneRowPerPair(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Set(ctx, attendee("u1"), "event-1", StatusAttending)
	require.NoError(t, err)

	second, err := svc.Set(ctx, attendee("u1"), "event-1", StatusMaybe)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "second answer must update the first record")

	docs, err := mem.Query(ctx, store.CollectionRSVPs, store.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "maybe", docs[0].Data.String("status"))
}

func TestSet_SeparatePairsGetSeparateRows(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Set(ctx, attendee("u1"), "event-1", StatusAttending)
	require.NoError(t, err)
	_, err = svc.Set(ctx, attendee("u2"), "event-1", StatusAttending)
	require.NoError(t, err)
	_, err = svc.Set(ctx, attendee("u1"), "event-2", StatusNotAttending)
	require.NoError(t, err)

	docs, err := mem.Query(ctx, store.CollectionRSVPs, store.Query{})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestSet_RequiresIdentity(t *testing.T) {
	svc := NewService(store.NewMemory(), zap.NewNop())
	_, err := svc.Set(context.Background(), nil, "event-1", StatusAttending)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHENTICATED", err.(*common.APIError).Code)
}

func TestGet(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	t.Run("nil when no answer exists", func(t *testing.T) {
		assert.Nil(t, svc.Get(ctx, attendee("u1"), "event-1"))
	})

	t.Run("nil for anonymous actors", func(t *testing.T) {
		assert.Nil(t, svc.Get(ctx, nil, "event-1"))
	})

	t.Run("returns the recorded answer", func(t *testing.T) {
		_, err := svc.Set(ctx, attendee("u1"), "event-1", StatusMaybe)
		require.NoError(t, err)
		got := svc.Get(ctx, attendee("u1"), "event-1")
		require.NotNil(t, got)
		assert.Equal(t, StatusMaybe, got.Status)
	})

	t.Run("lookup failure reads as no answer", func(t *testing.T) {
		mem.FailWith(errors.New("unavailable"))
		defer mem.FailWith(nil)
		assert.Nil(t, svc.Get(ctx, attendee("u1"), "event-1"))
	})
}

func TestCounts(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	for i, status := range []Status{StatusAttending, StatusAttending, StatusMaybe, StatusNotAttending} {
		_, err := svc.Set(ctx, attendee(string(rune('a'+i))), "event-1", status)
		require.NoError(t, err)
	}
	_, err := svc.Set(ctx, attendee("z"), "event-2", StatusAttending)
	require.NoError(t, err)

	counts, err := svc.Counts(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, &Counts{Attending: 2, Maybe: 1, NotAttending: 1}, counts)
}
