// File: internal/post/ws_test.go
package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slate_backend/internal/store"
)

func newTestHub(t *testing.T) *FeedHub {
	t.Helper()
	feed := NewFeed(store.NewMemory(), zap.NewNop())
	return NewFeedHub(feed, zap.NewNop())
}

func TestFeedHub_RegisterQueuesCurrentSnapshot(t *testing.T) {
	hub := newTestHub(t)
	client := &wsClient{send: make(chan Snapshot, 8)}

	require.True(t, hub.register(client))

	select {
	case snap := <-client.send:
		assert.True(t, snap.IsLoading)
		assert.Empty(t, snap.Posts)
	default:
		t.Fatal("expected the current snapshot to be queued on registration")
	}
}

func TestFeedHub_RegisterRefusedAfterStop(t *testing.T) {
	hub := newTestHub(t)
	hub.Stop()

	client := &wsClient{send: make(chan Snapshot, 8)}
	assert.False(t, hub.register(client))

	select {
	case <-client.send:
		t.Fatal("a refused client must not receive a snapshot")
	default:
	}
	hub.mu.Lock()
	assert.NotContains(t, hub.clients, client)
	hub.mu.Unlock()
}

func TestFeedHub_StopClosesRegisteredClients(t *testing.T) {
	hub := newTestHub(t)
	client := &wsClient{send: make(chan Snapshot, 8)}
	require.True(t, hub.register(client))

	hub.Stop()

	<-client.send // drain the snapshot queued at registration
	_, open := <-client.send
	assert.False(t, open)
}

func TestFeedHub_BroadcastDropsSlowClient(t *testing.T) {
	hub := newTestHub(t)
	client := &wsClient{send: make(chan Snapshot)} // unbuffered, never drained
	hub.mu.Lock()
	hub.clients[client] = struct{}{}
	hub.mu.Unlock()

	hub.broadcast(Snapshot{Posts: []Post{}, IsLoading: false})

	_, open := <-client.send
	assert.False(t, open, "slow client should be disconnected rather than stall the feed")
	hub.mu.Lock()
	assert.NotContains(t, hub.clients, client)
	hub.mu.Unlock()
}
