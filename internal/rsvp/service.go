// File: internal/rsvp/service.go
package rsvp

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for event RSVP business logic.
type Service interface {
	Set(ctx context.Context, actor *identity.Identity, postID string, status Status) (*RSVP, error)
	Get(ctx context.Context, actor *identity.Identity, postID string) *RSVP
	Counts(ctx context.Context, postID string) (*Counts, error)
}

// ServiceImplementation implements the RSVP Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new rsvp service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("rsvp-service")}
}

// Set records the actor's answer for an event, updating the existing record
// if one is found and inserting otherwise. The read and the write are two
// separate store calls, so concurrent calls from two sessions can race and
// leave two records; that is an accepted, documented limitation.
func (s *ServiceImplementation) Set(ctx context.Context, actor *identity.Identity, postID string, status Status) (*RSVP, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to RSVP.")
	}

	if existing := s.Get(ctx, actor, postID); existing != nil {
		err := s.store.Update(ctx, store.CollectionRSVPs, existing.ID, store.Document{
			"status": string(status),
		})
		if err != nil {
			s.logger.Error("failed to update RSVP", zap.Error(err), zap.String("rsvp_id", existing.ID))
			return nil, common.NewRemoteError(err)
		}
		existing.Status = status
		return existing, nil
	}

	r := RSVP{PostID: postID, UserID: actor.UID, Status: status}
	id, err := s.store.Insert(ctx, store.CollectionRSVPs, r.toDocument())
	if err != nil {
		s.logger.Error("failed to create RSVP", zap.Error(err), zap.String("post_id", postID))
		return nil, common.NewRemoteError(err)
	}
	r.ID = id

	s.logger.Info("rsvp recorded",
		zap.String("rsvp_id", id),
		zap.String("post_id", postID),
		zap.String("status", string(status)))
	return &r, nil
}

// Get returns the actor's RSVP for an event, or nil when there is none, the
// actor is anonymous, or the lookup fails. Lookup failures are deliberately
// indistinguishable from no answer.
func (s *ServiceImplementation) Get(ctx context.Context, actor *identity.Identity, postID string) *RSVP {
	if actor == nil {
		return nil
	}

	docs, err := s.store.Query(ctx, store.CollectionRSVPs, store.Query{
		Filters: []store.Filter{
			{Field: "postId", Value: postID},
			{Field: "userId", Value: actor.UID},
		},
		Limit: 1,
	})
	if err != nil {
		s.logger.Warn("RSVP lookup failed", zap.Error(err), zap.String("post_id", postID))
		return nil
	}
	if len(docs) == 0 {
		return nil
	}
	r := fromDoc(docs[0])
	return &r
}

// Counts tallies every answer for an event.
func (s *ServiceImplementation) Counts(ctx context.Context, postID string) (*Counts, error) {
	docs, err := s.store.Query(ctx, store.CollectionRSVPs, store.Query{
		Filters: []store.Filter{{Field: "postId", Value: postID}},
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}

	counts := &Counts{}
	for _, d := range docs {
		switch Status(d.Data.String("status")) {
		case StatusAttending:
			counts.Attending++
		case StatusMaybe:
			counts.Maybe++
		case StatusNotAttending:
			counts.NotAttending++
		}
	}
	return counts, nil
}
