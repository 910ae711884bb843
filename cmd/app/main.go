package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"hallway-backend/internal/api"
	"hallway-backend/internal/repository"
	"hallway-backend/internal/service"
	"hallway-backend/pkg/auth"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	sessionAuth := auth.NewSessionAuth(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)

	authService := service.NewAuthService(repo, repo, hasher, sessionAuth)
	waitlistService := service.NewWaitlistService(repo, repo)
	userService := service.NewUserService(repo, repo, hasher)
	adminService := service.NewAdminService(repo, repo, hasher)

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewWaitlistRoutes(a, waitlistService, cfg.Auth.WaitlistAPIKey)
	api.NewAuthRoutes(a, authService)
	api.NewUserRoutes(a, userService, sessionAuth)
	api.NewAdminRoutes(a, adminService, sessionAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
