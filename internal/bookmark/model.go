// File: internal/bookmark/model.go
package bookmark

import (
	"time"

	"slate_backend/internal/store"
)

// SavedPost is a bookmark row. The existence of any row for a (user, post)
// pair is what "saved" means; the row carries no other state.
type SavedPost struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	PostID    string     `json:"post_id"`
	CreatedAt *time.Time `json:"created_at"`
}

func (s SavedPost) toDocument() store.Document {
	return store.Document{
		"userId":    s.UserID,
		"postId":    s.PostID,
		"createdAt": store.ServerTimestamp,
	}
}

func fromDoc(d store.Doc) SavedPost {
	return SavedPost{
		ID:        d.ID,
		UserID:    d.Data.String("userId"),
		PostID:    d.Data.String("postId"),
		CreatedAt: d.Data.Time("createdAt"),
	}
}
