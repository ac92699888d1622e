// File: internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNoSuchDocument is returned by Update when the target document does not exist.
var ErrNoSuchDocument = errors.New("store: no such document")

// Collection names used by the application.
const (
	CollectionPosts           = "posts"
	CollectionMessages        = "messages"
	CollectionOffers          = "offers"
	CollectionRSVPs           = "rsvps"
	CollectionJobApplications = "job_applications"
	CollectionSavedPosts      = "saved_posts"
	CollectionReports         = "reports"
	CollectionUserProfiles    = "user_profiles"
)

// Document is a schemaless record as read from or written to a collection.
// Field names follow the wire format of the backing store (camelCase).
type Document map[string]interface{}

type serverTimestamp struct{}

// ServerTimestamp is a sentinel value. Any Document field set to it is
// replaced by a store-assigned timestamp at write time.
var ServerTimestamp = serverTimestamp{}

// Filter is a server-side equality constraint.
type Filter struct {
	Field string
	Value interface{}
}

// Query describes a one-shot or live query: equality filters, a single
// ordering field and an optional limit.
type Query struct {
	Filters []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Doc is a stored document together with its store-assigned identifier.
type Doc struct {
	ID   string
	Data Document
}

// Subscription is a live query. Snapshots delivers complete replacement
// result sets, strictly ordered, until Stop is called or the stream fails.
// After the channel is closed, Err reports the terminal error, if any.
type Subscription interface {
	Snapshots() <-chan []Doc
	Err() error
	Stop()
}

// Client is the domain store collaborator: plain CRUD plus live
// subscriptions over named collections. Implementations must never mutate a
// Document handed to a consumer; every delivery is a fresh snapshot.
type Client interface {
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, collection, id string, fields Document) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Doc, error)
	Subscribe(ctx context.Context, collection string, q Query) (Subscription, error)
}

// --- Document accessors. The store hands back loosely typed maps; these keep
// the per-collection decoding code short and nil-safe.

func (d Document) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func (d Document) StringPtr(key string) *string {
	if v, ok := d[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func (d Document) Bool(key string) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return false
}

func (d Document) Time(key string) *time.Time {
	if v, ok := d[key].(time.Time); ok {
		return &v
	}
	return nil
}

func (d Document) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (d Document) Sub(key string) Document {
	switch v := d[key].(type) {
	case Document:
		return v
	case map[string]interface{}:
		return Document(v)
	}
	return nil
}
