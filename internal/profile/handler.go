// File: internal/profile/handler.go
package profile

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile")
	profileGroup.Use(authMW)
	{
		profileGroup.POST("", h.createProfile)
		profileGroup.GET("", h.getProfile)
		profileGroup.PATCH("", h.updateProfile)
		profileGroup.POST("/upgrade", h.upgradeToPremium)
	}
}

func (h *Handler) createProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.GetIdentityFromContext(c)
	created, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Profile created successfully.", created)
}

func (h *Handler) getProfile(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	p, err := h.service.Get(c.Request.Context(), actor)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", p)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	actor := middleware.GetIdentityFromContext(c)
	if err := h.service.Update(c.Request.Context(), actor, req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", nil)
}

func (h *Handler) upgradeToPremium(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	if err := h.service.UpgradeToPremium(c.Request.Context(), actor); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile upgraded to premium.", nil)
}
