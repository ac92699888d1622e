package message

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

func actor(uid string) *identity.Identity {
	return &identity.Identity{UID: uid}
}

func TestSend(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Send(ctx, nil, SendMessageRequest{PostID: "p1", ReceiverID: "u2", Content: "hi"})
		require.Error(t, err)
		apiErr := err.(*common.APIError)
		assert.Equal(t, "UNAUTHENTICATED", apiErr.Code)
	})

	t.Run("creates an unread message attributed to the sender", func(t *testing.T) {
		sent, err := svc.Send(ctx, actor("u1"), SendMessageRequest{PostID: "p1", ReceiverID: "u2", Content: "still available?"})
		require.NoError(t, err)
		assert.Equal(t, "u1", sent.SenderID)
		assert.False(t, sent.Read)

		docs, err := mem.Query(ctx, store.CollectionMessages, store.Query{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, false, docs[0].Data.Bool("read"))
		assert.Equal(t, "u1", docs[0].Data.String("senderId"))
	})

	t.Run("duplicate sends create duplicate messages", func(t *testing.T) {
		_, err := svc.Send(ctx, actor("u1"), SendMessageRequest{PostID: "p1", ReceiverID: "u2", Content: "still available?"})
		require.NoError(t, err)
		docs, err := mem.Query(ctx, store.CollectionMessages, store.Query{})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestInboxAndForPost(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	mustSend := func(sender, receiver, postID, content string) {
		t.Helper()
		_, err := svc.Send(ctx, actor(sender), SendMessageRequest{PostID: postID, ReceiverID: receiver, Content: content})
		require.NoError(t, err)
	}
	mustSend("u1", "u2", "p1", "first")
	mustSend("u1", "u2", "p1", "second")
	mustSend("u2", "u1", "p1", "reply")
	mustSend("u3", "u2", "p9", "other post")

	t.Run("inbox is receiver scoped, newest first", func(t *testing.T) {
		inbox, err := svc.Inbox(ctx, actor("u2"))
		require.NoError(t, err)
		require.Len(t, inbox, 3)
		assert.Equal(t, "other post", inbox[0].Content)
		for _, m := range inbox {
			assert.Equal(t, "u2", m.ReceiverID)
		}
	})

	t.Run("per-post view only shows messages the actor received", func(t *testing.T) {
		msgs, err := svc.ForPost(ctx, actor("u2"), "p1")
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "second", msgs[0].Content)

		senderView, err := svc.ForPost(ctx, actor("u1"), "p1")
		require.NoError(t, err)
		require.Len(t, senderView, 1)
		assert.Equal(t, "reply", senderView[0].Content)
	})

	t.Run("requires an identity", func(t *testing.T) {
		_, err := svc.Inbox(ctx, nil)
		assert.Error(t, err)
		_, err = svc.ForPost(ctx, nil, "p1")
		assert.Error(t, err)
	})
}

func TestMarkRead(t *testing.T) {
	mem := store.NewMemory()
	svc := NewService(mem, zap.NewNop())
	ctx := context.Background()

	sent, err := svc.Send(ctx, actor("u1"), SendMessageRequest{PostID: "p1", ReceiverID: "u2", Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, actor("u2"), sent.ID))

	inbox, err := svc.Inbox(ctx, actor("u2"))
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].Read)

	t.Run("repeat calls are harmless", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, actor("u2"), sent.ID))
	})

	t.Run("store failure propagates as a remote error", func(t *testing.T) {
		mem.FailWith(errors.New("unavailable"))
		defer mem.FailWith(nil)
		err := svc.MarkRead(ctx, actor("u2"), sent.ID)
		require.Error(t, err)
		assert.Equal(t, "REMOTE_OPERATION_FAILED", err.(*common.APIError).Code)
	})
}
