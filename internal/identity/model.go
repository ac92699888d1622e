// File: internal/identity/model.go
package identity

import (
	firebaseauth "firebase.google.com/go/v4/auth"
)

// Identity is the acting user as reported by the identity provider: a stable
// identifier plus the profile basics. It is distinct from the richer
// UserProfile entity stored in the document store.
type Identity struct {
	UID         string  `json:"uid"`
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

// TokenResponse carries the provider-issued session tokens returned to
// clients after password sign-in.
type TokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// FromToken builds an Identity from a verified Firebase ID token.
func FromToken(token *firebaseauth.Token) *Identity {
	id := &Identity{UID: token.UID}
	if v, ok := token.Claims["email"].(string); ok && v != "" {
		id.Email = &v
	}
	if v, ok := token.Claims["name"].(string); ok && v != "" {
		id.DisplayName = &v
	}
	if v, ok := token.Claims["picture"].(string); ok && v != "" {
		id.PhotoURL = &v
	}
	return id
}

// FromUserRecord builds an Identity from a Firebase user record.
func FromUserRecord(rec *firebaseauth.UserRecord) *Identity {
	id := &Identity{UID: rec.UID}
	if rec.Email != "" {
		email := rec.Email
		id.Email = &email
	}
	if rec.DisplayName != "" {
		name := rec.DisplayName
		id.DisplayName = &name
	}
	if rec.PhotoURL != "" {
		photo := rec.PhotoURL
		id.PhotoURL = &photo
	}
	return id
}
