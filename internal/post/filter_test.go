package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func samplePostsForFilter() []Post {
	return []Post{
		{ID: "1", Title: "Vintage Leather Jacket", Description: "classic biker jacket", Category: CategorySale, Location: strp("Downtown"), Tags: []string{"fashion", "vintage"}},
		{ID: "2", Title: "Farmers Market", Description: "fresh produce and live music", Category: CategoryEvent, Location: strp("Central Park"), Tags: []string{"community", "food"}},
		{ID: "3", Title: "Dog Walking", Description: "weekend walks for all breeds", Category: CategoryService, Tags: []string{"pets"}},
	}
}

func TestFilterByCategory(t *testing.T) {
	posts := samplePostsForFilter()

	t.Run("all is the identity filter", func(t *testing.T) {
		assert.Equal(t, posts, FilterByCategory(posts, CategoryAll))
		assert.Equal(t, posts, FilterByCategory(posts, ""))
	})

	t.Run("keeps only matching posts in order", func(t *testing.T) {
		got := FilterByCategory(posts, CategoryEvent)
		assert.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("no matches yields empty, not nil panic", func(t *testing.T) {
		got := FilterByCategory(posts, CategoryJob)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestMatchesQuery(t *testing.T) {
	p := samplePostsForFilter()[0]

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.True(t, MatchesQuery(p, ""))
		assert.True(t, MatchesQuery(p, "   "))
	})

	t.Run("case insensitive substring on title", func(t *testing.T) {
		assert.True(t, MatchesQuery(p, "LEATHER"))
	})

	t.Run("matches description, location and tags", func(t *testing.T) {
		assert.True(t, MatchesQuery(p, "biker"))
		assert.True(t, MatchesQuery(p, "downtown"))
		assert.True(t, MatchesQuery(p, "vintage"))
	})

	t.Run("every term must match", func(t *testing.T) {
		assert.True(t, MatchesQuery(p, "leather downtown"))
		assert.False(t, MatchesQuery(p, "leather spaceship"))
	})

	t.Run("partial words still match", func(t *testing.T) {
		assert.True(t, MatchesQuery(p, "jack"))
	})

	t.Run("nil location is safe", func(t *testing.T) {
		noLoc := samplePostsForFilter()[2]
		assert.False(t, MatchesQuery(noLoc, "downtown"))
		assert.True(t, MatchesQuery(noLoc, "breeds"))
	})
}
