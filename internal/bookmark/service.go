// File: internal/bookmark/service.go
package bookmark

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for bookmark business logic.
type Service interface {
	Save(ctx context.Context, actor *identity.Identity, postID string) (*SavedPost, error)
	Unsave(ctx context.Context, actor *identity.Identity, postID string) error
	List(ctx context.Context, actor *identity.Identity) ([]SavedPost, error)
	IsSaved(ctx context.Context, actor *identity.Identity, postID string) bool
}

// ServiceImplementation implements the bookmark Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new bookmark service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("bookmark-service")}
}

// Save inserts a bookmark row. Saving an already-saved post creates a
// duplicate row; Unsave cleans those up.
func (s *ServiceImplementation) Save(ctx context.Context, actor *identity.Identity, postID string) (*SavedPost, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to save posts.")
	}

	sp := SavedPost{UserID: actor.UID, PostID: postID}
	id, err := s.store.Insert(ctx, store.CollectionSavedPosts, sp.toDocument())
	if err != nil {
		s.logger.Error("failed to save post", zap.Error(err), zap.String("post_id", postID))
		return nil, common.NewRemoteError(err)
	}
	sp.ID = id

	s.logger.Info("post saved", zap.String("post_id", postID), zap.String("user_id", actor.UID))
	return &sp, nil
}

// Unsave deletes every bookmark row matching (actor, post), so it also
// sweeps up duplicates left by repeated saves. A no-op when nothing matches.
func (s *ServiceImplementation) Unsave(ctx context.Context, actor *identity.Identity, postID string) error {
	if actor == nil {
		return common.ErrUnauthorized.WithDetails("You must be signed in to unsave posts.")
	}

	docs, err := s.store.Query(ctx, store.CollectionSavedPosts, store.Query{
		Filters: []store.Filter{
			{Field: "userId", Value: actor.UID},
			{Field: "postId", Value: postID},
		},
	})
	if err != nil {
		return common.NewRemoteError(err)
	}

	for _, d := range docs {
		if err := s.store.Delete(ctx, store.CollectionSavedPosts, d.ID); err != nil {
			s.logger.Error("failed to delete saved post", zap.Error(err), zap.String("saved_post_id", d.ID))
			return common.NewRemoteError(err)
		}
	}

	s.logger.Info("post unsaved",
		zap.String("post_id", postID),
		zap.String("user_id", actor.UID),
		zap.Int("rows_removed", len(docs)))
	return nil
}

// List returns the actor's bookmarks, newest first.
func (s *ServiceImplementation) List(ctx context.Context, actor *identity.Identity) ([]SavedPost, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to view saved posts.")
	}

	docs, err := s.store.Query(ctx, store.CollectionSavedPosts, store.Query{
		Filters: []store.Filter{{Field: "userId", Value: actor.UID}},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}

	saved := make([]SavedPost, 0, len(docs))
	for _, d := range docs {
		saved = append(saved, fromDoc(d))
	}
	return saved, nil
}

// IsSaved reports whether the actor has bookmarked the post. Anonymous
// actors and lookup failures both read as false.
func (s *ServiceImplementation) IsSaved(ctx context.Context, actor *identity.Identity, postID string) bool {
	if actor == nil {
		return false
	}

	docs, err := s.store.Query(ctx, store.CollectionSavedPosts, store.Query{
		Filters: []store.Filter{
			{Field: "userId", Value: actor.UID},
			{Field: "postId", Value: postID},
		},
		Limit: 1,
	})
	if err != nil {
		s.logger.Warn("saved-post lookup failed", zap.Error(err), zap.String("post_id", postID))
		return false
	}
	return len(docs) > 0
}
