// File: internal/jobapp/service.go
package jobapp

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for job application business logic.
type Service interface {
	Apply(ctx context.Context, actor *identity.Identity, req ApplyRequest) (*Application, error)
	UpdateStatus(ctx context.Context, applicationID string, status Status) error
	ForPost(ctx context.Context, postID string) ([]Application, error)
}

// ServiceImplementation implements the job application Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new job application service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("jobapp-service")}
}

// Apply inserts a submitted application from the actor. No dedup is applied;
// applying twice files two applications.
func (s *ServiceImplementation) Apply(ctx context.Context, actor *identity.Identity, req ApplyRequest) (*Application, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to apply to jobs.")
	}

	a := Application{
		PostID:      req.PostID,
		ApplicantID: actor.UID,
		ResumeText:  req.ResumeText,
		CoverLetter: req.CoverLetter,
		Status:      StatusSubmitted,
	}
	id, err := s.store.Insert(ctx, store.CollectionJobApplications, a.toDocument())
	if err != nil {
		s.logger.Error("failed to submit application", zap.Error(err), zap.String("post_id", req.PostID))
		return nil, common.NewRemoteError(err)
	}
	a.ID = id

	s.logger.Info("job application submitted",
		zap.String("application_id", id),
		zap.String("post_id", req.PostID),
		zap.String("applicant_id", actor.UID))
	return &a, nil
}

// UpdateStatus advances an application. The status update and the refreshed
// timestamp land in one write.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, applicationID string, status Status) error {
	err := s.store.Update(ctx, store.CollectionJobApplications, applicationID, store.Document{
		"status":    string(status),
		"updatedAt": store.ServerTimestamp,
	})
	if err != nil {
		s.logger.Error("failed to update application status",
			zap.Error(err), zap.String("application_id", applicationID))
		return common.NewRemoteError(err)
	}

	s.logger.Info("application status updated",
		zap.String("application_id", applicationID),
		zap.String("status", string(status)))
	return nil
}

// ForPost returns every application against a post, newest first.
func (s *ServiceImplementation) ForPost(ctx context.Context, postID string) ([]Application, error) {
	docs, err := s.store.Query(ctx, store.CollectionJobApplications, store.Query{
		Filters: []store.Filter{{Field: "postId", Value: postID}},
		OrderBy: "createdAt",
		Desc:    true,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}
	return applicationsFromDocs(docs), nil
}
