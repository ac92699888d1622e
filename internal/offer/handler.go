// File: internal/offer/handler.go
package offer

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for offer handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new offer handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for offer operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	offerGroup := router.Group("/offers")
	offerGroup.Use(authMW)
	{
		offerGroup.POST("", h.makeOffer)
		offerGroup.PATCH("/:id/respond", h.respondToOffer)
		offerGroup.GET("/post/:postID", h.getOffersForPost)
	}
}

func (h *Handler) makeOffer(c *gin.Context) {
	var req MakeOfferRequest
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
	made, err := h.service.Make(c.Request.Context(), actor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Offer made successfully.", made)
}

func (h *Handler) respondToOffer(c *gin.Context) {
	var req RespondToOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	if err := h.service.Respond(c.Request.Context(), c.Param("id"), req); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Offer response recorded.", nil)
}

func (h *Handler) getOffersForPost(c *gin.Context) {
	offers, err := h.service.ForPost(c.Request.Context(), c.Param("postID"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Offers retrieved successfully.", offers)
}
