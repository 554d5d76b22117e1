package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wishlist_api/internal/api"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common/security"
	"wishlist_api/internal/domain/repository"
	"wishlist_api/internal/platform/config"
	"wishlist_api/internal/platform/database"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.Info("Configuration loaded.")

	// 3. Initialize Token Manager
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)

	// 4. Initialize Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	logrus.Info("Database connected and migrated.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	wishRepo := repository.NewPgWishRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	wishService := service.NewWishService(wishRepo)
	userService := service.NewUserService(userRepo)
	fileService := service.NewFileService(cfg.UploadDir)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, tokens, authService, wishService, userService, fileService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Could not listen on %s: %v", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logrus.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}
	logrus.Info("Server stopped gracefully.")
}
