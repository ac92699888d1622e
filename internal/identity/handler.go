// File: internal/identity/handler.go
package identity

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
)

// Handler struct holds dependencies for authentication handlers.
type Handler struct {
	provider Provider
	oauth    OAuthService
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(provider Provider, oauth OAuthService, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, oauth: oauth, logger: logger}
}

// RegisterRoutes sets up the authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signUp)
		authGroup.POST("/signin", h.signIn)
		authGroup.GET("/google/login", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)

		authedGroup := authGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.POST("/signout", h.signOut)
			authedGroup.GET("/me", h.me)
		}
	}
}

// SignUpRequest is the payload for creating an account.
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

// SignInRequest is the payload for password sign-in.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	ident, err := h.provider.SignUp(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Account created successfully.", ident)
}

func (h *Handler) signIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	ident, tokens, err := h.provider.SignInPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed in successfully.", gin.H{
		"identity": ident,
		"tokens":   tokens,
	})
}

// signOut revokes the caller's refresh tokens. Issued ID tokens stay valid
// until they expire; revocation only blocks refresh.
func (h *Handler) signOut(c *gin.Context) {
	ident := FromContext(c)
	if ident == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	if err := h.provider.SignOut(c.Request.Context(), ident.UID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Signed out successfully.", nil)
}

func (h *Handler) me(c *gin.Context) {
	ident := FromContext(c)
	if ident == nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	common.RespondOK(c, "Identity retrieved successfully.", ident)
}

func (h *Handler) googleLogin(c *gin.Context) {
	url, err := h.oauth.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(302, url)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing code or state parameter."))
		return
	}

	result, err := h.oauth.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Federated sign-in completed.", result)
}
