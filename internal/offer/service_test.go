package offer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

func buyer(uid string) *identity.Identity {
	return &identity.Identity{UID: uid}
}

func makeTestOffer(t *testing.T, svc Service, postID string) *Offer {
	t.Helper()
	made, err := svc.Make(context.Background(), buyer("buyer-1"), MakeOfferRequest{
		PostID:   postID,
		SellerID: "seller-1",
		Amount:   "$60",
	})
	require.NoError(t, err)
	return made
}

func TestMake(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Make(ctx, nil, MakeOfferRequest{PostID: "p1", SellerID: "s1", Amount: "$10"})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHENTICATED", err.(*common.APIError).Code)
	})

	t.Run("creates a pending offer", func(t *testing.T) {
		made := makeTestOffer(t, svc, "p1")
		assert.Equal(t, StatusPending, made.Status)
		assert.Equal(t, "buyer-1", made.BuyerID)
	})

	t.Run("repeat offers from the same buyer stay distinct", func(t *testing.T) {
		makeTestOffer(t, svc, "p1")
		offers, err := svc.ForPost(ctx, "p1")
		require.NoError(t, err)
		assert.Len(t, offers, 2)
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()

	currentStatus := func(t *testing.T, svc Service, postID string) Offer {
		t.Helper()
		offers, err := svc.ForPost(ctx, postID)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		return offers[0]
	}

	t.Run("accepting without a counter sets status to exactly accepted", func(t *testing.T) {
		svc := NewService(store.NewMemory(), zap.NewNop())
		made := makeTestOffer(t, svc, "p1")

		require.NoError(t, svc.Respond(ctx, made.ID, RespondToOfferRequest{Status: StatusAccepted}))
		got := currentStatus(t, svc, "p1")
		assert.Equal(t, StatusAccepted, got.Status)
		assert.Nil(t, got.CounterOffer)
	})

	t.Run("a counter-offer forces countered regardless of the status argument", func(t *testing.T) {
		svc := NewService(store.NewMemory(), zap.NewNop())
		made := makeTestOffer(t, svc, "p1")

		counter := "$45"
		require.NoError(t, svc.Respond(ctx, made.ID, RespondToOfferRequest{
			Status:       StatusAccepted,
			CounterOffer: &counter,
		}))
		got := currentStatus(t, svc, "p1")
		assert.Equal(t, StatusCountered, got.Status)
		require.NotNil(t, got.CounterOffer)
		assert.Equal(t, "$45", *got.CounterOffer)
	})

	t.Run("same arguments twice leave the same final state", func(t *testing.T) {
		svc := NewService(store.NewMemory(), zap.NewNop())
		made := makeTestOffer(t, svc, "p1")

		req := RespondToOfferRequest{Status: StatusRejected}
		require.NoError(t, svc.Respond(ctx, made.ID, req))
		require.NoError(t, svc.Respond(ctx, made.ID, req))
		assert.Equal(t, StatusRejected, currentStatus(t, svc, "p1").Status)
	})

	t.Run("unknown offer propagates a remote error", func(t *testing.T) {
		svc := NewService(store.NewMemory(), zap.NewNop())
		err := svc.Respond(ctx, "missing", RespondToOfferRequest{Status: StatusAccepted})
		require.Error(t, err)
		assert.Equal(t, "REMOTE_OPERATION_FAILED", err.(*common.APIError).Code)
	})
}
