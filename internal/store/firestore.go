// File: internal/store/firestore.go
package store

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// firestoreClient implements Client against Cloud Firestore.
type firestoreClient struct {
	client *firestore.Client
	logger *zap.Logger
}

// NewFirestoreClient wraps an initialized Firestore client.
func NewFirestoreClient(client *firestore.Client, logger *zap.Logger) Client {
	return &firestoreClient{client: client, logger: logger.Named("FirestoreStore")}
}

// resolveSentinels maps the store's ServerTimestamp sentinel onto the
// Firestore one so callers stay backend-agnostic.
func resolveSentinels(doc Document) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

func (s *firestoreClient) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, resolveSentinels(doc))
	if err != nil {
		s.logger.Warn("Insert failed", zap.String("collection", collection), zap.Error(err))
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *firestoreClient) Update(ctx context.Context, collection, id string, fields Document) error {
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			v = firestore.ServerTimestamp
		}
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		s.logger.Warn("Update failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *firestoreClient) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		s.logger.Warn("Delete failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *firestoreClient) buildQuery(collection string, q Query) firestore.Query {
	fq := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, "==", f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq
}

func (s *firestoreClient) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	it := s.buildQuery(collection, q).Documents(ctx)
	defer it.Stop()

	var docs []Doc
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.logger.Warn("Query failed", zap.String("collection", collection), zap.Error(err))
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		docs = append(docs, Doc{ID: snap.Ref.ID, Data: Document(snap.Data())})
	}
	return docs, nil
}

// firestoreSubscription adapts a Firestore query snapshot iterator to the
// Subscription contract. Snapshot order is preserved; the pump goroutine
// exits when the iterator fails or Stop cancels it.
type firestoreSubscription struct {
	ch   chan []Doc
	stop context.CancelFunc

	mu  sync.Mutex
	err error
}

func (s *firestoreSubscription) Snapshots() <-chan []Doc { return s.ch }

func (s *firestoreSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *firestoreSubscription) Stop() { s.stop() }

func (s *firestoreClient) Subscribe(ctx context.Context, collection string, q Query) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &firestoreSubscription{
		ch:   make(chan []Doc),
		stop: cancel,
	}

	it := s.buildQuery(collection, q).Snapshots(subCtx)

	go func() {
		defer close(sub.ch)
		defer it.Stop()
		for {
			qsnap, err := it.Next()
			if err != nil {
				if subCtx.Err() == nil {
					s.logger.Warn("Subscription stream failed",
						zap.String("collection", collection), zap.Error(err))
					sub.mu.Lock()
					sub.err = err
					sub.mu.Unlock()
				}
				return
			}

			var docs []Doc
			docIt := qsnap.Documents
			for {
				snap, err := docIt.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					sub.mu.Lock()
					sub.err = err
					sub.mu.Unlock()
					return
				}
				docs = append(docs, Doc{ID: snap.Ref.ID, Data: Document(snap.Data())})
			}

			select {
			case sub.ch <- docs:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}
