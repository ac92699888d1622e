// File: internal/profile/service.go
package profile

import (
	"context"

	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/identity"
	"slate_backend/internal/store"
)

// Service defines the interface for user profile business logic.
type Service interface {
	Create(ctx context.Context, actor *identity.Identity, req CreateProfileRequest) (*UserProfile, error)
	Update(ctx context.Context, actor *identity.Identity, req UpdateProfileRequest) error
	Get(ctx context.Context, actor *identity.Identity) (*UserProfile, error)
	UpgradeToPremium(ctx context.Context, actor *identity.Identity) error
}

// ServiceImplementation implements the profile Service interface.
type ServiceImplementation struct {
	store  store.Client
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(st store.Client, logger *zap.Logger) Service {
	return &ServiceImplementation{store: st, logger: logger.Named("profile-service")}
}

// Create inserts a new profile for the actor, always starting non-premium.
// Nothing prevents calling this twice; two creates leave two profiles and
// lookups then return whichever the store lists first.
func (s *ServiceImplementation) Create(ctx context.Context, actor *identity.Identity, req CreateProfileRequest) (*UserProfile, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to create a profile.")
	}

	p := UserProfile{
		UserID:      actor.UID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Premium:     false,
	}
	if req.Preferences != nil {
		p.Preferences = *req.Preferences
	}
	if p.Preferences.Categories == nil {
		p.Preferences.Categories = []string{}
	}

	id, err := s.store.Insert(ctx, store.CollectionUserProfiles, p.toDocument())
	if err != nil {
		s.logger.Error("failed to create profile", zap.Error(err), zap.String("user_id", actor.UID))
		return nil, common.NewRemoteError(err)
	}
	p.ID = id

	s.logger.Info("profile created", zap.String("profile_id", id), zap.String("user_id", actor.UID))
	return &p, nil
}

// Update looks the actor's profile up by owning user id and applies the
// supplied fields in place. Fails with NotFound when no profile exists. The
// lookup and the write are separate store calls; concurrent updates can
// interleave, which is accepted.
func (s *ServiceImplementation) Update(ctx context.Context, actor *identity.Identity, req UpdateProfileRequest) error {
	if actor == nil {
		return common.ErrUnauthorized.WithDetails("You must be signed in to update your profile.")
	}

	existing, err := s.lookup(ctx, actor.UID)
	if err != nil {
		return err
	}
	if existing == nil {
		return common.ErrNotFound.WithDetails("User profile not found.")
	}

	fields := store.Document{"updatedAt": store.ServerTimestamp}
	if req.DisplayName != nil {
		fields["displayName"] = *req.DisplayName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.PhoneNumber != nil {
		fields["phoneNumber"] = *req.PhoneNumber
	}
	if req.Preferences != nil {
		categories := req.Preferences.Categories
		if categories == nil {
			categories = []string{}
		}
		fields["preferences"] = store.Document{
			"notifications": req.Preferences.Notifications,
			"emailUpdates":  req.Preferences.EmailUpdates,
			"categories":    categories,
		}
	}

	if err := s.store.Update(ctx, store.CollectionUserProfiles, existing.ID, fields); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err), zap.String("profile_id", existing.ID))
		return common.NewRemoteError(err)
	}

	s.logger.Info("profile updated", zap.String("profile_id", existing.ID))
	return nil
}

// Get returns the actor's profile, or NotFound when none exists.
func (s *ServiceImplementation) Get(ctx context.Context, actor *identity.Identity) (*UserProfile, error) {
	if actor == nil {
		return nil, common.ErrUnauthorized.WithDetails("You must be signed in to view your profile.")
	}

	existing, err := s.lookup(ctx, actor.UID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, common.ErrNotFound.WithDetails("User profile not found.")
	}
	return existing, nil
}

// UpgradeToPremium flips the premium flag on the actor's existing profile.
func (s *ServiceImplementation) UpgradeToPremium(ctx context.Context, actor *identity.Identity) error {
	if actor == nil {
		return common.ErrUnauthorized.WithDetails("You must be signed in to upgrade.")
	}

	existing, err := s.lookup(ctx, actor.UID)
	if err != nil {
		return err
	}
	if existing == nil {
		return common.ErrNotFound.WithDetails("User profile not found.")
	}

	err = s.store.Update(ctx, store.CollectionUserProfiles, existing.ID, store.Document{
		"premium":   true,
		"updatedAt": store.ServerTimestamp,
	})
	if err != nil {
		s.logger.Error("failed to upgrade profile", zap.Error(err), zap.String("profile_id", existing.ID))
		return common.NewRemoteError(err)
	}

	s.logger.Info("profile upgraded to premium", zap.String("profile_id", existing.ID))
	return nil
}

func (s *ServiceImplementation) lookup(ctx context.Context, userID string) (*UserProfile, error) {
	docs, err := s.store.Query(ctx, store.CollectionUserProfiles, store.Query{
		Filters: []store.Filter{{Field: "userId", Value: userID}},
		Limit:   1,
	})
	if err != nil {
		return nil, common.NewRemoteError(err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	p := fromDoc(docs[0])
	return &p, nil
}
