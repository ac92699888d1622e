// File: internal/report/service.go
package report

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for content report business logic.
type Service interface {
	Submit(ctx context.Context, actor *identity.Identity, req SubmitReportRequest) (*Report, error)
	UpdateStatus(ctx context.Context, reportID string, status Status) error
}

// ServiceImplementation implements the report Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new report service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("report-service")}
}

// Submit files a pending report from the actor.
func (s *ServiceImplementation) Submit(ctx context.Context, actor *identity.Identity, req SubmitReportRequest) (*Report, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to report posts.")
	}

	r := Report{
		PostID:     req.PostID,
		ReporterID: actor.UID,
		Reason:     req.Reason,
		Status:     StatusPending,
	}
	id, err := s.store.Insert(ctx, store.CollectionReports, r.toDocument())
	if err != nil {
		s.logger.Error("failed to submit report", zap.Error(err), zap.String("post_id", req.PostID))
		return nil, common.NewRemoteError(err)
	}
	r.ID = id

	s.logger.Info("report submitted",
		zap.String("report_id", id),
		zap.String("post_id", req.PostID),
		zap.String("reporter_id", actor.UID))
	return &r, nil
}

// UpdateStatus moves a report through moderation.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, reportID string, status Status) error {
	err := s.store.Update(ctx, store.CollectionReports, reportID, store.Document{
		"status":    string(status),
		"updatedAt": store.ServerTimestamp,
	})
	if err != nil {
		s.logger.Error("failed to update report status", zap.Error(err), zap.String("report_id", reportID))
		return common.NewRemoteError(err)
	}

	s.logger.Info("report status updated",
		zap.String("report_id", reportID),
		zap.String("status", string(status)))
	return nil
}
