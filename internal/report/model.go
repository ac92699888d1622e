// File: internal/report/model.go
package report

import (
	"time"

	"slate_backend/internal/store"
)

// Status tracks a content report through moderation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Report is one user's complaint about a post. No dedup; each submission
// files a new report.
type Report struct {
	ID         string     `json:"id"`
	PostID     string     `json:"post_id"`
	ReporterID string     `json:"reporter_id"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

func (r Report) toDocument() store.Document {
	return store.Document{
		"postId":     r.PostID,
		"reporterId": r.ReporterID,
		"reason":     r.Reason,
		"status":     string(r.Status),
		"createdAt":  store.ServerTimestamp,
		"updatedAt":  store.ServerTimestamp,
	}
}

// SubmitReportRequest is the payload for reporting a post.
type SubmitReportRequest struct {
	PostID string `json:"post_id" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1"`
}

// UpdateStatusRequest moves a report through moderation.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending reviewing resolved dismissed"`
}
