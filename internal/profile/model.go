// File: internal/profile/model.go
package profile

import (
	"time"

	"slate_backend/internal/store"
)

// Preferences is the notification/interest bundle attached to a profile.
type Preferences struct {
	Notifications bool     `json:"notifications"`
	EmailUpdates  bool     `json:"email_updates"`
	Categories    []string `json:"categories"`
}

// UserProfile is the richer per-user record kept in the document store,
// distinct from the provider-side Identity. One per user, looked up by the
// owning user id; uniqueness is by convention, not enforced by the store.
type UserProfile struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	Bio         *string     `json:"bio"`
	Location    *string     `json:"location"`
	PhoneNumber *string     `json:"phone_number"`
	Premium     bool        `json:"premium"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   *time.Time  `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at"`
}

func (p UserProfile) toDocument() store.Document {
	doc := store.Document{
		"userId":      p.UserID,
		"displayName": p.DisplayName,
		"premium":     p.Premium,
		"preferences": store.Document{
			"notifications": p.Preferences.Notifications,
			"emailUpdates":  p.Preferences.EmailUpdates,
			"categories":    p.Preferences.Categories,
		},
		"createdAt": store.ServerTimestamp,
		"updatedAt": store.ServerTimestamp,
	}
	if p.Bio != nil {
		doc["bio"] = *p.Bio
	}
	if p.Location != nil {
		doc["location"] = *p.Location
	}
	if p.PhoneNumber != nil {
		doc["phoneNumber"] = *p.PhoneNumber
	}
	return doc
}

func fromDoc(d store.Doc) UserProfile {
	prefs := d.Data.Sub("preferences")
	categories := prefs.Strings("categories")
	if categories == nil {
		categories = []string{}
	}
	return UserProfile{
		ID:          d.ID,
		UserID:      d.Data.String("userId"),
		DisplayName: d.Data.String("displayName"),
		Bio:         d.Data.StringPtr("bio"),
		Location:    d.Data.StringPtr("location"),
		PhoneNumber: d.Data.StringPtr("phoneNumber"),
		Premium:     d.Data.Bool("premium"),
		Preferences: Preferences{
			Notifications: prefs.Bool("notifications"),
			EmailUpdates:  prefs.Bool("emailUpdates"),
			Categories:    categories,
		},
		CreatedAt: d.Data.Time("createdAt"),
		UpdatedAt: d.Data.Time("updatedAt"),
	}
}

// CreateProfileRequest is the payload for creating a profile. The premium
// flag is never client-supplied; new profiles always start non-premium.
type CreateProfileRequest struct {
	DisplayName string       `json:"display_name" binding:"required,min=1,max=100"`
	Bio         *string      `json:"bio"`
	Location    *string      `json:"location"`
	PhoneNumber *string      `json:"phone_number"`
	Preferences *Preferences `json:"preferences"`
}

// UpdateProfileRequest carries partial profile changes. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	DisplayName *string      `json:"display_name" binding:"omitempty,min=1,max=100"`
	Bio         *string      `json:"bio"`
	Location    *string      `json:"location"`
	PhoneNumber *string      `json:"phone_number"`
	Preferences *Preferences `json:"preferences"`
}
