// File: internal/rsvp/handler.go
package rsvp

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for RSVP handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new rsvp handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for RSVP operations. Counts are public;
// setting and reading your own answer require auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	rsvpGroup := router.Group("/posts/:postID/rsvp")
	{
		rsvpGroup.GET("/counts", h.getCounts)
		rsvpGroup.PUT("", authMW, h.setRSVP)
		rsvpGroup.GET("", authMW, h.getOwnRSVP)
	}
}

func (h *Handler) setRSVP(c *gin.Context) {
	var req SetRSVPRequest
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
	rsvp, err := h.service.Set(c.Request.Context(), actor, c.Param("postID"), req.Status)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "RSVP recorded successfully.", rsvp)
}

func (h *Handler) getOwnRSVP(c *gin.Context) {
	actor := middleware.GetIdentityFromContext(c)
	rsvp := h.service.Get(c.Request.Context(), actor, c.Param("postID"))
	common.RespondOK(c, "RSVP retrieved successfully.", rsvp)
}

func (h *Handler) getCounts(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context(), c.Param("postID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "RSVP counts retrieved successfully.", counts)
}
