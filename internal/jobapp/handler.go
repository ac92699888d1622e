// File: internal/jobapp/handler.go
package jobapp

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for job application handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new job application handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for job application operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	appGroup := router.Group("/applications")
	appGroup.Use(authMW)
	{
		appGroup.POST("", h.applyToJob)
		appGroup.PATCH("/:id/status", h.updateApplicationStatus)
		appGroup.GET("/post/:postID", h.getApplicationsForPost)
	}
}

func (h *Handler) applyToJob(c *gin.Context) {
	var req ApplyRequest
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
	application, err := h.service.Apply(c.Request.Context(), actor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Application submitted successfully.", application)
}

func (h *Handler) updateApplicationStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Application status updated.", nil)
}

func (h *Handler) getApplicationsForPost(c *gin.Context) {
	applications, err := h.service.ForPost(c.Request.Context(), c.Param("postID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Applications retrieved successfully.", applications)
}
