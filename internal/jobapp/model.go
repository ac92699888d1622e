// File: internal/jobapp/model.go
package jobapp

import (
	"time"

	"slate_backend/internal/store"
)

// Status tracks an application through the hiring pipeline.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusHired     Status = "hired"
)

// Application is one submission against a job post. Repeat submissions by
// the same applicant create separate applications.
type Application struct {
	ID          string     `json:"id"`
	PostID      string     `json:"post_id"`
	ApplicantID string     `json:"applicant_id"`
	ResumeText  string     `json:"resume_text"`
	CoverLetter string     `json:"cover_letter"`
	Status      Status     `json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (a Application) toDocument() store.Document {
	return store.Document{
		"postId":      a.PostID,
		"applicantId": a.ApplicantID,
		"resumeText":  a.ResumeText,
		"coverLetter": a.CoverLetter,
		"status":      string(a.Status),
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	}
}

func fromDoc(d store.Doc) Application {
	return Application{
		ID:          d.ID,
		PostID:      d.Data.String("postId"),
		ApplicantID: d.Data.String("applicantId"),
		ResumeText:  d.Data.String("resumeText"),
		CoverLetter: d.Data.String("coverLetter"),
		Status:      Status(d.Data.String("status")),
		CreatedAt:   d.Data.Time("createdAt"),
		UpdatedAt:   d.Data.Time("updatedAt"),
	}
}

func applicationsFromDocs(docs []store.Doc) []Application {
	apps := make([]Application, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, fromDoc(d))
	}
	return apps
}

// ApplyRequest is the payload for applying to a job post.
type ApplyRequest struct {
	PostID      string `json:"post_id" binding:"required"`
	ResumeText  string `json:"resume_text"`
	CoverLetter string `json:"cover_letter"`
}

// UpdateStatusRequest advances an application through the pipeline.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=submitted reviewing interview rejected hired"`
}
