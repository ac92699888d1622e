// File: internal/identity/oauth.go
package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"slate_backend/internal/config"
)

// GoogleUserInfoURL is a variable for testing.
var GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

const oauthStateCookie = "slate_oauth_state"

// FederatedSignInResult is the outcome of a completed federated sign-in: the
// resolved identity plus a Firebase custom token the client exchanges for a
// regular session.
type FederatedSignInResult struct {
	Identity    *Identity `json:"identity"`
	CustomToken string    `json:"custom_token"`
}

// OAuthService drives the Google OAuth2 code flow for federated sign-in.
type OAuthService interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code, state string) (*FederatedSignInResult, error)
}

type oauthService struct {
	cfg        *config.Config
	authClient *firebaseauth.Client
	logger     *zap.Logger
}

// NewOAuthService creates the Google OAuth service.
func NewOAuthService(cfg *config.Config, authClient *firebaseauth.Client, logger *zap.Logger) OAuthService {
	return &oauthService{
		cfg:        cfg,
		authClient: authClient,
		logger:     logger.Named("OAuthService"),
	}
}

func getGoogleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleOAuthClientID,
		ClientSecret: cfg.GoogleOAuthClientSecret,
		RedirectURL:  cfg.GoogleOAuthRedirectURL,
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

func generateOAuthState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GetGoogleLoginURL generates the URL for Google OAuth login and stores the
// state in a short-lived cookie.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := generateOAuthState()
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return "", err
	}
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)

	authURL := getGoogleOAuthConfig(s.cfg).AuthCodeURL(state, oauth2.AccessTypeOffline)
	s.logger.Info("Generated Google login URL")
	return authURL, nil
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// HandleGoogleCallback processes the callback from Google: verifies the
// state, exchanges the code, resolves the Google profile, and looks up or
// creates the matching Firebase user before minting a custom token.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code, state string) (*FederatedSignInResult, error) {
	storedState, err := c.Cookie(oauthStateCookie)
	if err != nil || storedState == "" || storedState != state {
		s.logger.Warn("OAuth state mismatch on Google callback")
		return nil, fmt.Errorf("invalid OAuth state")
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	ctx := c.Request.Context()
	token, err := getGoogleOAuthConfig(s.cfg).Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("Google code exchange failed", zap.Error(err))
		return nil, err
	}

	info, err := s.fetchGoogleProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	rec, err := s.authClient.GetUserByEmail(ctx, info.Email)
	if err != nil {
		if !firebaseauth.IsUserNotFound(err) {
			s.logger.Warn("Firebase user lookup failed", zap.String("email", info.Email), zap.Error(err))
			return nil, err
		}
		rec, err = s.authClient.CreateUser(ctx, (&firebaseauth.UserToCreate{}).
			Email(info.Email).
			DisplayName(info.Name).
			PhotoURL(info.Picture).
			EmailVerified(info.EmailVerified))
		if err != nil {
			s.logger.Warn("Firebase user creation failed", zap.String("email", info.Email), zap.Error(err))
			return nil, err
		}
		s.logger.Info("Created Firebase user from Google profile", zap.String("uid", rec.UID))
	}

	customToken, err := s.authClient.CustomToken(ctx, rec.UID)
	if err != nil {
		s.logger.Error("Failed to mint custom token", zap.String("uid", rec.UID), zap.Error(err))
		return nil, err
	}

	return &FederatedSignInResult{
		Identity:    FromUserRecord(rec),
		CustomToken: customToken,
	}, nil
}

func (s *oauthService) fetchGoogleProfile(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GoogleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.logger.Warn("Google userinfo request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google userinfo: status %d: %s", resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding google userinfo: %w", err)
	}
	return &info, nil
}
