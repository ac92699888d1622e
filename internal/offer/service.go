// File: internal/offer/service.go
package offer

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for offer negotiation business logic.
type Service interface {
	Make(ctx context.Context, actor *identity.Identity, req MakeOfferRequest) (*Offer, error)
	Respond(ctx context.Context, offerID string, req RespondToOfferRequest) error
	ForPost(ctx context.Context, postID string) ([]Offer, error)
}

// ServiceImplementation implements the offer Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new offer service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("offer-service")}
}

// Make inserts a pending offer from the actor. Concurrent offers from the
// same buyer on the same post produce distinct documents; that is expected.
func (s *ServiceImplementation) Make(ctx context.Context, actor *identity.Identity, req MakeOfferRequest) (*Offer, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to make offers.")
	}

	o := Offer{
		PostID:   req.PostID,
		BuyerID:  actor.UID,
		SellerID: req.SellerID,
		Amount:   req.Amount,
		Message:  req.Message,
		Status:   StatusPending,
	}
	id, err := s.store.Insert(ctx, store.CollectionOffers, o.toDocument())
	if err != nil {
		s.logger.Error("failed to make offer", zap.Error(err), zap.String("post_id", req.PostID))
		return nil, common.NewRemoteError(err)
	}
	o.ID = id

	s.logger.Info("offer made",
		zap.String("offer_id", id),
		zap.String("post_id", req.PostID),
		zap.String("buyer_id", actor.UID),
		zap.String("amount", req.Amount))
	return &o, nil
}

// Respond updates an offer's status. A supplied counter-offer always forces
// the status to countered, regardless of the status argument; the counter
// value and the status land in the same write. Repeat calls with the same
// arguments are idempotent. No ownership check is applied here.
func (s *ServiceImplementation) Respond(ctx context.Context, offerID string, req RespondToOfferRequest) error {
	fields := store.Document{
		"status":    string(req.Status),
		"updatedAt": store.ServerTimestamp,
	}
	if req.CounterOffer != nil && *req.CounterOffer != "" {
		fields["counterOffer"] = *req.CounterOffer
		fields["status"] = string(StatusCountered)
	}

	if err := s.store.Update(ctx, store.CollectionOffers, offerID, fields); err != nil {
		s.logger.Error("failed to respond to offer", zap.Error(err), zap.String("offer_id", offerID))
		return common.NewRemoteError(err)
	}

	s.logger.Info("offer response recorded",
		zap.String("offer_id", offerID),
		zap.String("status", fields["status"].(string)))
	return nil
}

// ForPost returns all offers on a post, newest first.
func (s *ServiceImplementation) ForPost(ctx context.Context, postID string) ([]Offer, error) {
	docs, err := s.store.Query(ctx, store.CollectionOffers, store.Query{
		Filters: []store.Filter{{Field: "postId", Value: postID}},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}
	return offersFromDocs(docs), nil
}
