// File: internal/post/feed.go
package post

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"slate_backend/internal/store"
)

// Snapshot is one consistent state of the live feed. Each snapshot fully
// replaces the previous one; deliveries are never incremental diffs.
type Snapshot struct {
	Posts     []Post `json:"posts"`
	IsLoading bool   `json:"is_loading"`
}

// Feed maintains a single live subscription on the posts collection, ordered
// newest first, and fans each replacement snapshot out to local subscribers.
//
// Before the first delivery the feed reports an empty, loading snapshot. A
// broken stream degrades to an empty, non-loading snapshot, which is
// deliberately indistinguishable from a feed with no posts.
type Feed struct {
	store  store.Client
	logger *zap.Logger

	mu      sync.Mutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextID  int
	stop    context.CancelFunc
	started bool
}

func NewFeed(st store.Client, logger *zap.Logger) *Feed {
	return &Feed{
		store:  st,
		logger: logger.Named("feed"),
		current: Snapshot{
			Posts:     []Post{},
			IsLoading: true,
		},
		subs: make(map[int]chan Snapshot),
	}
}

// Start opens the live subscription and begins publishing snapshots. It is
// not safe to restart a stopped feed.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return nil
	}
	f.started = true
	f.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)

	sub, err := f.store.Subscribe(ctx, store.CollectionPosts, store.Query{
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		cancel()
		f.logger.Error("failed to open feed subscription", zap.Error(err))
		f.publish(Snapshot{Posts: []Post{}, IsLoading: false})
		return err
	}

	f.mu.Lock()
	f.stop = cancel
	f.mu.Unlock()

	go f.pump(sub)
	return nil
}

func (f *Feed) pump(sub store.Subscription) {
	for docs := range sub.Snapshots() {
		f.publish(Snapshot{
			Posts:     postsFromDocs(docs),
			IsLoading: false,
		})
	}
	if err := sub.Err(); err != nil {
		f.logger.Warn("feed subscription ended with error", zap.Error(err))
		f.publish(Snapshot{Posts: []Post{}, IsLoading: false})
	}
}

// Stop tears down the live subscription and closes all subscriber channels.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
	for id, ch := range f.subs {
		close(ch)
		delete(f.subs, id)
	}
}

// Current returns the latest published snapshot.
func (f *Feed) Current() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Subscribe registers a snapshot consumer. The current snapshot is delivered
// immediately; slow consumers are coalesced to the newest snapshot rather
// than blocking the feed. The returned function cancels the subscription.
func (f *Feed) Subscribe() (<-chan Snapshot, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan Snapshot, 8)
	ch <- f.current
	f.subs[id] = ch

	unsubscribe := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

func (f *Feed) publish(snap Snapshot) {
	if snap.Posts == nil {
		snap.Posts = []Post{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = snap
	for _, ch := range f.subs {
		select {
		case ch <- snap:
		default:
			// Drop the oldest pending snapshot so the consumer always
			// converges on the newest state.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
