// File: internal/post/ws.go
package post

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// feedMessage is the frame pushed to websocket clients on every feed change.
type feedMessage struct {
	Type string   `json:"type"`
	Data Snapshot `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan Snapshot
}

// FeedHub bridges the in-process feed to websocket clients. It holds one
// feed subscription for its whole lifetime and fans each snapshot out to
// every connected socket; clients that cannot keep up are disconnected.
type FeedHub struct {
	feed   *Feed
	logger *zap.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
	done    chan struct{}
}

func NewFeedHub(feed *Feed, logger *zap.Logger) *FeedHub {
	return &FeedHub{
		feed:    feed,
		logger:  logger.Named("feed-hub"),
		clients: make(map[*wsClient]struct{}),
		done:    make(chan struct{}),
	}
}

// Run consumes feed snapshots and broadcasts them until Stop is called.
// It is intended to run on its own goroutine.
func (h *FeedHub) Run() {
	snapshots, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			h.broadcast(snap)
		case <-h.done:
			return
		}
	}
}

// Stop shuts the hub down and closes every client connection.
func (h *FeedHub) Stop() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *FeedHub) broadcast(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- snap:
		default:
			// Slow consumer; drop it rather than stalling the feed.
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// register adds the client and queues the current snapshot on its send
// channel. Both happen under the lock so a concurrent Stop or slow-client
// drop cannot close the channel mid-send. Returns false when the hub has
// already been stopped.
func (h *FeedHub) register(c *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	// The channel is freshly made with room to spare; this never blocks.
	c.send <- h.feed.Current()
	return true
}

func (h *FeedHub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
}

// HandleConnection upgrades the request to a websocket, pushes the current
// snapshot immediately, then streams every subsequent one.
func (h *FeedHub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn, send: make(chan Snapshot, 8)}
	if !h.register(client) {
		conn.Close()
		return
	}

	go h.writePump(client)
	go h.readPump(client)
}

func (h *FeedHub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case snap, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(feedMessage{Type: "feed", Data: snap}); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *FeedHub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// The stream is one-way; reads only serve to detect disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
