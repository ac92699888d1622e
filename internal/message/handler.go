// File: internal/message/handler.go
package message

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for message handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new message handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for messaging. Everything requires auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	messageGroup := router.Group("/messages")
	messageGroup.Use(authMW)
	{
		messageGroup.POST("", h.sendMessage)
		messageGroup.GET("", h.getInbox)
		messageGroup.GET("/post/:postID", h.getMessagesForPost)
		messageGroup.PATCH("/:id/read", h.markMessageRead)
	}
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req SendMessageRequest
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
	sent, err := h.service.Send(c.Request.Context(), actor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message sent successfully.", sent)
}

func (h *Handler) getInbox(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	messages, err := h.service.Inbox(c.Request.Context(), actor)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Messages retrieved successfully.", messages)
}

func (h *Handler) getMessagesForPost(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	messages, err := h.service.ForPost(c.Request.Context(), actor, c.Param("postID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Messages retrieved successfully.", messages)
}

func (h *Handler) markMessageRead(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	if err := h.service.MarkRead(c.Request.Context(), actor, c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Message marked as read.", nil)
}
