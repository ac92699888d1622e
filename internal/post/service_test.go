package post

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/config"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

func newTestService(t *testing.T) (Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	cfg := &config.Config{PublicBaseURL: "https://slate.example.com"}
	return NewService(mem, cfg, zap.NewNop()), mem
}

func TestCreatePost_AnonymousAttribution(t *testing.T) {
	svc, mem := newTestService(t)

	created, err := svc.CreatePost(context.Background(), nil, CreatePostRequest{
		Title:       "Old Bicycle",
		Description: "Needs a new chain.",
		ImageURLs:   []string{"https://example.com/bike.jpg"},
		Category:    CategorySale,
	})
	require.NoError(t, err)
	assert.Equal(t, Anonymous, created.Author)
	assert.Equal(t, "old-bicycle", created.Slug)

	docs, err := mem.Query(context.Background(), store.CollectionPosts, store.Query{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Anonymous", docs[0].Data.Sub("user").String("name"))
	assert.NotNil(t, docs[0].Data.Time("createdAt"), "creation timestamp must be store-assigned")
}

func TestCreatePost_AuthenticatedAttribution(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Dana Smith"
	photo := "https://example.com/dana.png"
	actor := &identity.Identity{UID: "uid-1", DisplayName: &name, PhotoURL: &photo}

	created, err := svc.CreatePost(context.Background(), actor, CreatePostRequest{
		Title:       "Guitar Lessons",
		Description: "Beginner friendly.",
		ImageURLs:   []string{"https://example.com/guitar.jpg"},
		Category:    CategoryService,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana Smith", created.Author.Name)
	assert.Equal(t, photo, created.Author.AvatarURL)
	assert.Nil(t, created.Author.PhoneNumber)
}

func TestCreatePost_StoreFailure(t *testing.T) {
	svc, mem := newTestService(t)
	mem.FailWith(errors.New("unavailable"))

	_, err := svc.CreatePost(context.Background(), nil, CreatePostRequest{
		Title:       "Doomed",
		Description: "never stored",
		ImageURLs:   []string{"https://example.com/x.jpg"},
		Category:    CategorySale,
	})
	require.Error(t, err)
	apiErr, ok := err.(*common.APIError)
	require.True(t, ok)
	assert.Equal(t, "REMOTE_OPERATION_FAILED", apiErr.Code)
}

func TestSearch(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	t.Run("newest first with empty query", func(t *testing.T) {
		got := svc.Search(ctx, "", CategoryAll)
		require.Len(t, got, 4)
		assert.Equal(t, "Senior Frontend Engineer", got[0].Title)
		assert.Equal(t, "Vintage Leather Jacket", got[3].Title)
	})

	t.Run("category narrows at the store", func(t *testing.T) {
		got := svc.Search(ctx, "", CategorySale)
		require.Len(t, got, 1)
		assert.Equal(t, "Vintage Leather Jacket", got[0].Title)
	})

	t.Run("terms are conjunctive over title, description, location and tags", func(t *testing.T) {
		assert.Len(t, svc.Search(ctx, "leather downtown", CategoryAll), 1)
		assert.Len(t, svc.Search(ctx, "leather remote", CategoryAll), 0)
		assert.Len(t, svc.Search(ctx, "REACT", CategoryAll), 1)
	})

	t.Run("store failure degrades to empty result", func(t *testing.T) {
		mem.FailWith(errors.New("unavailable"))
		defer mem.FailWith(nil)
		got := svc.Search(ctx, "leather", CategoryAll)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSeed(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	count, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	t.Run("insertion order gives the last sample the newest timestamp", func(t *testing.T) {
		docs, err := mem.Query(ctx, store.CollectionPosts, store.Query{OrderBy: "createdAt", Desc: true})
		require.NoError(t, err)
		require.Len(t, docs, 4)
		assert.Equal(t, "Senior Frontend Engineer", docs[0].Data.String("title"))
	})

	t.Run("seeding again duplicates rather than upserts", func(t *testing.T) {
		_, err := svc.Seed(ctx)
		require.NoError(t, err)
		docs, err := mem.Query(ctx, store.CollectionPosts, store.Query{})
		require.NoError(t, err)
		assert.Len(t, docs, 8)
	})
}
