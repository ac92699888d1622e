// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slate_backend/internal/bookmark"
	"slate_backend/internal/config"
	"slate_backend/internal/firebase"
	"slate_backend/internal/identity"
	"slate_backend/internal/jobapp"
	"slate_backend/internal/message"
	"slate_backend/internal/middleware"
	"slate_backend/internal/offer"
	"slate_backend/internal/post"
	"slate_backend/internal/profile"
	"slate_backend/internal/report"
	"slate_backend/internal/rsvp"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	feed *post.Feed
	hub  *post.FeedHub
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	firebaseService *firebase.Service,
	feed *post.Feed,
	hub *post.FeedHub,
	authHandler *identity.Handler,
	postHandler *post.Handler,
	messageHandler *message.Handler,
	offerHandler *offer.Handler,
	rsvpHandler *rsvp.Handler,
	jobappHandler *jobapp.Handler,
	bookmarkHandler *bookmark.Handler,
	reportHandler *report.Handler,
	profileHandler *profile.Handler,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(firebaseService, logger.Named("OptionalAuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Slate API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	postHandler.RegisterRoutes(v1, optionalAuthMW)
	postHandler.RegisterStreamRoutes(v1)
	messageHandler.RegisterRoutes(v1, authMW)
	offerHandler.RegisterRoutes(v1, authMW)
	rsvpHandler.RegisterRoutes(v1, authMW)
	jobappHandler.RegisterRoutes(v1, authMW)
	bookmarkHandler.RegisterRoutes(v1, authMW)
	reportHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		feed:       feed,
		hub:        hub,
	}, nil
}

// Start opens the live feed, begins websocket fan-out, and serves HTTP until
// the server is shut down.
func (s *Server) Start() error {
	if err := s.feed.Start(context.Background()); err != nil {
		// The feed degrades to an empty snapshot on a failed subscription;
		// the server still comes up so the rest of the API is usable.
		s.logger.Warn("Feed subscription unavailable at startup", zap.Error(err))
	}
	go s.hub.Run()

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

// Shutdown stops the websocket hub and the live feed, then drains HTTP.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	s.hub.Stop()
	s.feed.Stop()
	return s.httpServer.Shutdown(ctx)
}
