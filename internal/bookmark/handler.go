// File: internal/bookmark/handler.go
package bookmark

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for bookmark handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new bookmark handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for bookmark operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	savedGroup := router.Group("/saved-posts")
	savedGroup.Use(authMW)
	{
		savedGroup.GET("", h.listSavedPosts)
		savedGroup.PUT("/:postID", h.savePost)
		savedGroup.DELETE("/:postID", h.unsavePost)
		savedGroup.GET("/:postID", h.isPostSaved)
	}
}

func (h *Handler) savePost(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	saved, err := h.service.Save(c.Request.Context(), actor, c.Param("postID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Post saved successfully.", saved)
}

func (h *Handler) unsavePost(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	if err := h.service.Unsave(c.Request.Context(), actor, c.Param("postID")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	// Unsave is idempotent, so there is nothing useful to echo back.
	common.RespondNoContent(c)
}

func (h *Handler) listSavedPosts(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	saved, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Saved posts retrieved successfully.", saved)
}

func (h *Handler) isPostSaved(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	saved := h.service.IsSaved(c.Request.Context(), actor, c.Param("postID"))
	common.RespondOK(c, "Saved state retrieved successfully.", gin.H{"saved": saved})
}
