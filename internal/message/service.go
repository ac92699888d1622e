// File: internal/message/service.go
package message

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for messaging business logic.
type Service interface {
	Send(ctx context.Context, actor *identity.Identity, req SendMessageRequest) (*Message, error)
	ForPost(ctx context.Context, actor *identity.Identity, postID string) ([]Message, error)
	Inbox(ctx context.Context, actor *identity.Identity) ([]Message, error)
	MarkRead(ctx context.Context, actor *identity.Identity, messageID string) error
}

// ServiceImplementation implements the message Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new message service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("message-service")}
}

// Send inserts a new unread message. Duplicate sends create duplicate
// messages; there is no dedup.
func (s *ServiceImplementation) Send(ctx context.Context, actor *identity.Identity, req SendMessageRequest) (*Message, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to send messages.")
	}

	m := Message{
		PostID:     req.PostID,
		SenderID:   actor.UID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Read:       false,
	}
	id, err := s.store.Insert(ctx, store.CollectionMessages, m.toDocument())
	if err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err), zap.String("post_id", req.PostID), zap.String("sender_id", actor.UID))
		return nil, common.NewRemoteError(err)
	}
	m.ID = id

	s.logger.Info("message sent",
		zap.String("message_id", id),
		zap.String("sender_id", actor.UID),
		zap.String("receiver_id", req.ReceiverID))
	return &m, nil
}

// ForPost returns the actor's received messages about one post, newest
// first. The query is receiver-scoped so senders never see each other's
// threads through this call.
func (s *ServiceImplementation) ForPost(ctx context.Context, actor *identity.Identity, postID string) ([]Message, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to view messages.")
	}

	docs, err := s.store.Query(ctx, store.CollectionMessages, store.Query{
		Filters: []store.Filter{
			{Field: "postId", Value: postID},
			{Field: "receiverId", Value: actor.UID},
		},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}
	return messagesFromDocs(docs), nil
}

// Inbox returns every message addressed to the actor, newest first.
func (s *ServiceImplementation) Inbox(ctx context.Context, actor *identity.Identity) ([]Message, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to view messages.")
	}

	docs, err := s.store.Query(ctx, store.CollectionMessages, store.Query{
		Filters: []store.Filter{{Field: "receiverId", Value: actor.UID}},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}
	return messagesFromDocs(docs), nil
}

// MarkRead flips the read flag on a message. Repeat calls are harmless.
func (s *ServiceImplementation) MarkRead(ctx context.Context, actor *identity.Identity, messageID string) error {
	if actor == nil {
		return common.ErrUnauthorized.WithDetails("You must be signed in to update messages.")
	}

	err := s.store.Update(ctx, store.CollectionMessages, messageID, store.Document{"read": true})
	if err != nil {
		s.logger.Error("failed to mark message read", zap.Error(err), zap.String("message_id", messageID))
		return common.NewRemoteError(err)
	}
	return nil
}
