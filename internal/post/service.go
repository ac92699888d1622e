// File: internal/post/service.go
package post

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/config"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for post-related business logic.
type Service interface {
	CreatePost(ctx context.Context, actor *identity.Identity, req CreatePostRequest) (*Post, error)
	Search(ctx context.Context, query string, category Category) []Post
	Seed(ctx context.Context) (int, error)
}

// ServiceImplementation implements the post Service interface.
type ServiceImplementation struct {
	store  store.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new post service.
func NewService(st store.Client, cfg *config.Config, logger *zap.Logger) Service {
	return &ServiceImplementation{
		store:  st,
		cfg:    cfg,
		logger: logger.Named("post-service"),
	}
}

// CreatePost inserts a new post attributed to the acting identity, or to the
// shared anonymous placeholder when no identity is present. The creation
// timestamp is assigned by the store, never by the caller.
func (s *ServiceImplementation) CreatePost(ctx context.Context, actor *identity.Identity, req CreatePostRequest) (*Post, error) {
	p := Post{
		Title:       req.Title,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		Author:      authorFromIdentity(actor),
		Category:    req.Category,
		Price:       req.Price,
		Location:    req.Location,
		EventDate:   req.EventDate,
		Tags:        req.Tags,
		Slug:        slug.Make(req.Title),
	}

	id, err := s.store.Insert(ctx, store.CollectionPosts, p.toDocument())
	if err != nil {
		s.logger.Error("failed to insert post", zap.Error(err), zap.String("title", req.Title))
		return nil, common.NewRemoteError(err)
	}
	p.ID = id

	s.logger.Info("post created",
		zap.String("post_id", id),
		zap.String("category", string(p.Category)),
		zap.String("author", p.Author.Name))
	return &p, nil
}

func authorFromIdentity(actor *identity.Identity) Author {
	if actor == nil {
		return Anonymous
	}
	name := "Member"
	switch {
	case actor.DisplayName != nil && *actor.DisplayName != "":
		name = *actor.DisplayName
	case actor.Email != nil && *actor.Email != "":
		name = *actor.Email
	}
	avatarURL := fmt.Sprintf("https://picsum.photos/seed/%s/100/100", actor.UID)
	if actor.PhotoURL != nil && *actor.PhotoURL != "" {
		avatarURL = *actor.PhotoURL
	}
	return Author{Name: name, AvatarURL: avatarURL}
}

// Search fetches posts newest first, optionally narrowed to a category at
// the store, then applies the text query in-process. Every term of the query
// must match; results keep their newest-first order. Store failures degrade
// to an empty result rather than an error.
func (s *ServiceImplementation) Search(ctx context.Context, query string, category Category) []Post {
	q := store.Query{OrderBy: "createdAt", Desc: true}
	if category != "" && category != CategoryAll {
		q.Filters = append(q.Filters, store.Filter{Field: "category", Value: string(category)})
	}

	docs, err := s.store.Query(ctx, store.CollectionPosts, q)
	if err != nil {
		s.logger.Warn("search query failed, returning empty result",
			zap.Error(err), zap.String("query", query))
		return []Post{}
	}

	results := make([]Post, 0, len(docs))
	for _, d := range docs {
		p := fromDoc(d)
		if MatchesQuery(p, query) {
			results = append(results, p)
		}
	}
	return results
}

// Seed installs the built-in sample posts, inserting them one at a time.
// It does not check for prior seeds; running it twice duplicates the data.
// On failure the posts inserted so far remain in place.
func (s *ServiceImplementation) Seed(ctx context.Context) (int, error) {
	samples := seedPosts()
	for i, p := range samples {
		p.Slug = slug.Make(p.Title)
		if _, err := s.store.Insert(ctx, store.CollectionPosts, p.toDocument()); err != nil {
			s.logger.Error("seeding aborted",
				zap.Error(err), zap.Int("inserted", i), zap.String("title", p.Title))
			return i, common.NewRemoteError(err)
		}
		s.logger.Info("seeded post", zap.String("title", p.Title))
	}
	return len(samples), nil
}
