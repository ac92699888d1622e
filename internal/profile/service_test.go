package profile

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

func owner(uid string) *identity.Identity {
	return &identity.Identity{UID: uid}
}

func strp(s string) *string { return &s }

func TestCreate(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Create(ctx, nil, CreateProfileRequest{DisplayName: "Dana"})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHENTICATED", err.(*common.APIError).Code)
	})

	t.Run("new profiles always start non-premium", func(t *testing.T) {
		created, err := svc.Create(ctx, owner("u1"), CreateProfileRequest{
			DisplayName: "Dana",
			Bio:         strp("Hi there"),
			Preferences: &Preferences{Notifications: true, Categories: []string{"sale"}},
		})
		require.NoError(t, err)
		assert.False(t, created.Premium)
		assert.Equal(t, "u1", created.UserID)

		docs, err := mem.Query(ctx, store.CollectionUserProfiles, store.Query{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, false, docs[0].Data.Bool("premium"))
	})
}

func TestGet(t *testing.T) {
	svc := NewService(store.NewMemory(), zap.NewNop())
	ctx := context.Background()

	t.Run("not found before creation", func(t *testing.T) {
		_, err := svc.Get(ctx, owner("u1"))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*common.APIError).Code)
	})

	t.Run("round trips the stored profile", func(t *testing.T) {
		_, err := svc.Create(ctx, owner("u1"), CreateProfileRequest{
			DisplayName: "Dana",
			Location:    strp("Downtown"),
			Preferences: &Preferences{EmailUpdates: true, Categories: []string{"event", "job"}},
		})
		require.NoError(t, err)

		got, err := svc.Get(ctx, owner("u1"))
		require.NoError(t, err)
		assert.Equal(t, "Dana", got.DisplayName)
		require.NotNil(t, got.Location)
		assert.Equal(t, "Downtown", *got.Location)
		assert.True(t, got.Preferences.EmailUpdates)
		assert.Equal(t, []string{"event", "job"}, got.Preferences.Categories)
	})
}

func TestUpdate(t *testing.T) {
	svc := NewService(store.NewMemory(), zap.NewNop())
	ctx := context.Background()

	t.Run("fails with not found when no profile exists", func(t *testing.T) {
		err := svc.Update(ctx, owner("u1"), UpdateProfileRequest{DisplayName: strp("New Name")})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*common.APIError).Code)
	})

	t.Run("applies only the supplied fields", func(t *testing.T) {
		_, err := svc.Create(ctx, owner("u1"), CreateProfileRequest{
			DisplayName: "Dana",
			Bio:         strp("Original bio"),
		})
		require.NoError(t, err)

		require.NoError(t, svc.Update(ctx, owner("u1"), UpdateProfileRequest{DisplayName: strp("Dana S.")}))

		got, err := svc.Get(ctx, owner("u1"))
		require.NoError(t, err)
		assert.Equal(t, "Dana S.", got.DisplayName)
		require.NotNil(t, got.Bio)
		assert.Equal(t, "Original bio", *got.Bio)
	})

	t.Run("is idempotent on the same arguments", func(t *testing.T) {
		req := UpdateProfileRequest{Location: strp("Uptown")}
		require.NoError(t, svc.Update(ctx, owner("u1"), req))
		require.NoError(t, svc.Update(ctx, owner("u1"), req))
		got, err := svc.Get(ctx, owner("u1"))
		require.NoError(t, err)
		assert.Equal(t, "Uptown", *got.Location)
	})
}

func TestUpgradeToPremium(t *testing.T) {
	svc := NewService(store.NewMemory(), zap.NewNop())
	ctx := context.Background()

	t.Run("fails with not found when no profile exists", func(t *testing.T) {
		err := svc.UpgradeToPremium(ctx, owner("u1"))
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", err.(*common.APIError).Code)
	})

	t.Run("flips the premium flag", func(t *testing.T) {
		_, err := svc.Create(ctx, owner("u1"), CreateProfileRequest{DisplayName: "Dana"})
		require.NoError(t, err)

		require.NoError(t, svc.UpgradeToPremium(ctx, owner("u1")))

		got, err := svc.Get(ctx, owner("u1"))
		require.NoError(t, err)
		assert.True(t, got.Premium)
	})
}
