// File: internal/identity/provider.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"slate_backend/internal/config"
)

const signInWithPasswordURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Provider is the identity-provider collaborator. Errors from the provider
// are propagated to callers unmodified.
type Provider interface {
	// SignUp creates the account, then applies the display name in a second
	// sequential call. If the second call fails the account still exists with
	// no display name; there is no compensating rollback.
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
	// SignInPassword exchanges email/password for the provider's session tokens.
	SignInPassword(ctx context.Context, email, password string) (*Identity, *TokenResponse, error)
	// SignOut revokes the user's refresh tokens, ending the session.
	SignOut(ctx context.Context, uid string) error
}

// firebaseProvider implements Provider against Firebase Auth. Account
// management goes through the Admin SDK; password sign-in goes through the
// Identity Toolkit REST endpoint, which is keyed by the project's web API key.
type firebaseProvider struct {
	authClient *firebaseauth.Client
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewFirebaseProvider creates the Firebase-backed identity provider.
func NewFirebaseProvider(authClient *firebaseauth.Client, cfg *config.Config, logger *zap.Logger) Provider {
	return &firebaseProvider{
		authClient: authClient,
		apiKey:     cfg.FirebaseWebAPIKey,
		httpClient: http.DefaultClient,
		logger:     logger.Named("IdentityProvider"),
	}
}

func (p *firebaseProvider) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	rec, err := p.authClient.CreateUser(ctx, (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password))
	if err != nil {
		p.logger.Warn("Sign-up failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	updated, err := p.authClient.UpdateUser(ctx, rec.UID, (&firebaseauth.UserToUpdate{}).
		DisplayName(displayName))
	if err != nil {
		// The account exists at this point; the caller sees the failure as-is.
		p.logger.Warn("Sign-up created account but display name update failed",
			zap.String("uid", rec.UID), zap.Error(err))
		return nil, err
	}

	p.logger.Info("User created", zap.String("uid", updated.UID))
	return FromUserRecord(updated), nil
}

type passwordSignInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordSignInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityToolkitError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *firebaseProvider) SignInPassword(ctx context.Context, email, password string) (*Identity, *TokenResponse, error) {
	body, err := json.Marshal(passwordSignInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, nil, err
	}

	url := fmt.Sprintf("%s?key=%s", signInWithPasswordURL, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("Password sign-in request failed", zap.Error(err))
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var toolkitErr identityToolkitError
		if jsonErr := json.Unmarshal(respBody, &toolkitErr); jsonErr == nil && toolkitErr.Error.Message != "" {
			p.logger.Warn("Password sign-in rejected", zap.String("reason", toolkitErr.Error.Message))
			return nil, nil, fmt.Errorf("sign-in failed: %s", toolkitErr.Error.Message)
		}
		return nil, nil, fmt.Errorf("sign-in failed: status %d", resp.StatusCode)
	}

	var signIn passwordSignInResponse
	if err := json.Unmarshal(respBody, &signIn); err != nil {
		return nil, nil, fmt.Errorf("decoding sign-in response: %w", err)
	}

	ident := &Identity{UID: signIn.LocalID}
	if signIn.Email != "" {
		ident.Email = &signIn.Email
	}
	if signIn.DisplayName != "" {
		ident.DisplayName = &signIn.DisplayName
	}

	tokens := &TokenResponse{
		IDToken:      signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
		ExpiresIn:    signIn.ExpiresIn,
		TokenType:    "Bearer",
	}
	p.logger.Info("User signed in", zap.String("uid", ident.UID))
	return ident, tokens, nil
}

func (p *firebaseProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		p.logger.Warn("Sign-out failed", zap.String("uid", uid), zap.Error(err))
		return err
	}
	p.logger.Info("User signed out", zap.String("uid", uid))
	return nil
}
