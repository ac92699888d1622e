// File: internal/rsvp/model.go
package rsvp

import (
	"time"

	"slate_backend/internal/store"
)

// Status is a user's attendance answer for an event post.
type Status string

const (
	StatusAttending    Status = "attending"
	StatusMaybe        Status = "maybe"
	StatusNotAttending Status = "not-attending"
)

// RSVP records one user's answer for one event. At most one exists per
// (post, user) pair; changing an answer updates the existing record.
type RSVP struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	UserID    string     `json:"user_id"`
	Status    Status     `json:"status"`
	CreatedAt *time.Time `json:"created_at"`
}

func (r RSVP) toDocument() store.Document {
	return store.Document{
		"postId":    r.PostID,
		"userId":    r.UserID,
		"status":    string(r.Status),
		"createdAt": store.ServerTimestamp,
	}
}

func fromDoc(d store.Doc) RSVP {
	return RSVP{
		ID:        d.ID,
		PostID:    d.Data.String("postId"),
		UserID:    d.Data.String("userId"),
		Status:    Status(d.Data.String("status")),
		CreatedAt: d.Data.Time("createdAt"),
	}
}

// Counts aggregates the answers for one event.
type Counts struct {
	Attending    int `json:"attending"`
	Maybe        int `json:"maybe"`
	NotAttending int `json:"not_attending"`
}

// SetRSVPRequest is the payload for answering an event.
type SetRSVPRequest struct {
	Status Status `json:"status" binding:"required,oneof=attending maybe not-attending"`
}
