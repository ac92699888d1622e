// File: cmd/server/providers.go
package main

import (
	"context"

	"cloud.google.com/go/firestore"
	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"slate_backend/internal/config"
	"slate_backend/internal/firebase"
	"slate_backend/internal/store"
)

func provideFirebaseService(cfg *config.Config, logger *zap.Logger) (*firebase.Service, error) {
	return firebase.NewService(cfg, logger)
}

func provideAuthClient(fb *firebase.Service) *firebaseauth.Client {
	return fb.Auth()
}

func provideFirestoreClient(fb *firebase.Service, logger *zap.Logger) (*firestore.Client, func(), error) {
	client, err := fb.Firestore(context.Background())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close Firestore client", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

func provideStoreClient(client *firestore.Client, logger *zap.Logger) store.Client {
	return store.NewFirestoreClient(client, logger)
}
