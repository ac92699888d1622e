// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"slate_backend/internal/app"
	"slate_backend/internal/bookmark"
	"slate_backend/internal/config"
	"slate_backend/internal/identity"
	"slate_backend/internal/jobapp"
	"slate_backend/internal/message"
	"slate_backend/internal/offer"
	"slate_backend/internal/platform/logger"
	"slate_backend/internal/post"
	"slate_backend/internal/profile"
	"slate_backend/internal/report"
	"slate_backend/internal/rsvp"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideFirebaseService,
		provideAuthClient,
		provideFirestoreClient,
		provideStoreClient,

		// Identity
		identity.NewFirebaseProvider,
		identity.NewOAuthService,
		identity.NewHandler,

		// Feed
		post.NewFeed,
		post.NewFeedHub,
		post.NewService,
		post.NewHandler,

		// Interaction workflows
		message.NewService,
		message.NewHandler,
		offer.NewService,
		offer.NewHandler,
		rsvp.NewService,
		rsvp.NewHandler,
		jobapp.NewService,
		jobapp.NewHandler,
		bookmark.NewService,
		bookmark.NewHandler,
		report.NewService,
		report.NewHandler,
		profile.NewService,
		profile.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
