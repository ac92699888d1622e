// File: internal/store/memory.go
package store

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Client with the same observable semantics as the
// Firestore implementation: server-assigned monotonic timestamps, equality
// filters, ordered snapshots and live subscriptions redelivered on every
// matching change. It backs the test suite and local development.
type Memory struct {
	mu          sync.Mutex
	collections map[string]map[string]Document
	clock       time.Time
	nextSubID   int
	subs        map[int]*memorySub
	failErr     error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]Document),
		clock:       time.Now().UTC(),
		subs:        make(map[int]*memorySub),
	}
}

// FailWith forces every subsequent operation to fail with err. Passing nil
// restores normal behavior. Used to exercise remote-failure paths.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// tick advances the store clock. Timestamps are strictly increasing so that
// creation order is a total order, matching the backend's monotonic
// server-assigned timestamps.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case []string:
			c := make([]string, len(t))
			copy(c, t)
			out[k] = c
		case Document:
			out[k] = copyDocument(t)
		case map[string]interface{}:
			out[k] = copyDocument(Document(t))
		default:
			out[k] = v
		}
	}
	return out
}

func (m *Memory) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return "", m.failErr
	}

	stored := copyDocument(doc)
	for k, v := range stored {
		if _, ok := v.(serverTimestamp); ok {
			stored[k] = m.tick()
		}
	}

	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]Document)
		m.collections[collection] = col
	}
	id := uuid.NewString()
	col[id] = stored

	m.publishLocked(collection)
	return id, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}

	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNoSuchDocument
	}
	for k, v := range fields {
		if _, sentinel := v.(serverTimestamp); sentinel {
			doc[k] = m.tick()
			continue
		}
		doc[k] = v
	}

	m.publishLocked(collection)
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}

	delete(m.collections[collection], id)
	m.publishLocked(collection)
	return nil
}

func (m *Memory) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.runQueryLocked(collection, q), nil
}

func (m *Memory) runQueryLocked(collection string, q Query) []Doc {
	var docs []Doc
	for id, doc := range m.collections[collection] {
		if matchesFilters(doc, q.Filters) {
			docs = append(docs, Doc{ID: id, Data: copyDocument(doc)})
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			less := valueLess(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			if q.Desc {
				return !less && !reflect.DeepEqual(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
			}
			return less
		})
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs
}

func matchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if !reflect.DeepEqual(doc[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func valueLess(a, b interface{}) bool {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Before(bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av < bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return av < bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return av < bv
		}
	}
	return false
}

// memorySub buffers snapshots; when the consumer lags, older snapshots are
// coalesced away so the latest state always gets through, which is the
// delivery contract the backend offers.
type memorySub struct {
	id         int
	collection string
	query      Query
	ch         chan []Doc
	store      *Memory
	stopped    bool
}

func (s *memorySub) Snapshots() <-chan []Doc { return s.ch }
func (s *memorySub) Err() error              { return nil }

func (s *memorySub) Stop() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	delete(s.store.subs, s.id)
	close(s.ch)
}

func (s *memorySub) deliver(docs []Doc) {
	select {
	case s.ch <- docs:
	default:
		select {
		case <-s.ch:
		default:
		}
		s.ch <- docs
	}
}

func (m *Memory) Subscribe(ctx context.Context, collection string, q Query) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}

	m.nextSubID++
	sub := &memorySub{
		id:         m.nextSubID,
		collection: collection,
		query:      q,
		ch:         make(chan []Doc, 64),
		store:      m,
	}
	m.subs[sub.id] = sub

	sub.deliver(m.runQueryLocked(collection, q))
	return sub, nil
}

func (m *Memory) publishLocked(collection string) {
	for _, sub := range m.subs {
		if sub.collection == collection && !sub.stopped {
			sub.deliver(m.runQueryLocked(collection, sub.query))
		}
	}
}
