// File: internal/post/handler.go
package post

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"slate_backend/internal/common"
	"slate_backend/internal/config"
	"slate_backend/internal/middleware"
)

// Handler struct holds dependencies for post handlers.
type Handler struct {
	service Service
	feed    *Feed
	hub     *FeedHub
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new post handler.
func NewHandler(service Service, feed *Feed, hub *FeedHub, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		feed:    feed,
		hub:     hub,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for post operations. Creation takes the
// optional auth middleware so unauthenticated visitors can still post, just
// as anonymous authors.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, optionalAuthMW gin.HandlerFunc) {
	postGroup := router.Group("/posts")
	{
		postGroup.GET("", h.getFeed)
		postGroup.GET("/search", h.searchPosts)
		postGroup.POST("", optionalAuthMW, h.createPost)
		postGroup.POST("/seed", h.seedPosts)
	}
}

// RegisterStreamRoutes sets up the websocket feed endpoint.
func (h *Handler) RegisterStreamRoutes(router *gin.RouterGroup) {
	router.GET("/ws/feed", h.hub.HandleConnection)
}

// getFeed returns the latest feed snapshot, optionally narrowed to a
// category. Filtering happens on the snapshot, so the result is always
// consistent with what live subscribers see.
func (h *Handler) getFeed(c *gin.Context) {
	snap := h.feed.Current()

	category := Category(c.Query("category"))
	posts := FilterByCategory(snap.Posts, category)

	common.RespondOK(c, "Feed retrieved successfully.", Snapshot{
		Posts:     posts,
		IsLoading: snap.IsLoading,
	})
}

func (h *Handler) searchPosts(c *gin.Context) {
	query := c.Query("q")
	category := Category(c.DefaultQuery("category", string(CategoryAll)))

	posts := h.service.Search(c.Request.Context(), query, category)
	common.RespondOK(c, "Search completed successfully.", posts)
}

func (h *Handler) createPost(c *gin.Context) {
	var req CreatePostRequest
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
	created, err := h.service.CreatePost(c.Request.Context(), actor, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Post created successfully.", gin.H{
		"post":      created,
		"share_url": created.ShareURL(h.cfg.PublicBaseURL),
	})
}

func (h *Handler) seedPosts(c *gin.Context) {
	count, err := h.service.Seed(c.Request.Context())
	if err != nil {
		h.logger.Error("Seed request failed", zap.Error(err), zap.Int("inserted", count))
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Sample posts seeded successfully.", gin.H{"inserted": count})
}
