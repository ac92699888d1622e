// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"slate_backend/internal/config"
	"slate_backend/internal/identity"
	"slate_backend/internal/platform/logger"
	"slate_backend/internal/post"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "seed":
			runSeed()
			return
		case "watch":
			runWatch(os.Args[2:])
			return
		}
	}

	// Default: Start server
	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runSeed installs the built-in sample posts and exits. Running it twice
// duplicates the samples; that matches the seed operation's contract.
func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for seed: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		appLogger = logger.NewDefaultLogger()
		appLogger.Warn("Falling back to the default development logger", zap.Error(err))
	}

	fb, err := provideFirebaseService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Firebase for seed", zap.Error(err))
	}
	fsClient, cleanup, err := provideFirestoreClient(fb, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Firestore for seed", zap.Error(err))
	}
	defer cleanup()

	svc := post.NewService(provideStoreClient(fsClient, appLogger), cfg, appLogger)
	count, err := svc.Seed(context.Background())
	if err != nil {
		appLogger.Fatal("FATAL: Seeding failed", zap.Int("inserted", count), zap.Error(err))
	}
	appLogger.Info("Seeding completed successfully.", zap.Int("inserted", count))
}

// runWatch signs a session in from the command line and prints every
// identity change the session observes, then signs out. Useful for checking
// provider credentials and watching the observer stream end to end.
func runWatch(args []string) {
	watchCmd := flag.NewFlagSet("watch", flag.ExitOnError)
	email := watchCmd.String("email", "", "Account email to sign in with")
	password := watchCmd.String("password", "", "Account password")
	hold := watchCmd.Duration("hold", 2*time.Second, "How long to stay signed in before signing out")
	watchCmd.Parse(args)

	if *email == "" || *password == "" {
		log.Fatal("FATAL: watch requires -email and -password")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for watch: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		appLogger = logger.NewDefaultLogger()
		appLogger.Warn("Falling back to the default development logger", zap.Error(err))
	}

	fb, err := provideFirebaseService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("FATAL: Failed to initialize Firebase for watch", zap.Error(err))
	}

	provider := identity.NewFirebaseProvider(provideAuthClient(fb), cfg, appLogger)
	session := identity.NewSession(provider, appLogger)

	unsubscribe := session.Observe(func(ident *identity.Identity) {
		if ident == nil {
			fmt.Println("identity: <signed out>")
			return
		}
		fmt.Printf("identity: %s\n", ident.UID)
	})
	defer unsubscribe()

	ctx := context.Background()
	if _, _, err := session.SignInPassword(ctx, *email, *password); err != nil {
		appLogger.Fatal("FATAL: Sign-in failed", zap.Error(err))
	}

	time.Sleep(*hold)

	if err := session.SignOut(ctx); err != nil {
		appLogger.Warn("Sign-out reported an error", zap.Error(err))
	}
	appLogger.Info("Watch completed.")
}
