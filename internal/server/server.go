package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/blucialabs/backend/internal/config"
	"github.com/blucialabs/backend/internal/database"
	"github.com/blucialabs/backend/internal/handlers"
	"github.com/blucialabs/backend/internal/mailer"
	"github.com/blucialabs/backend/internal/repositories"
	"github.com/blucialabs/backend/internal/routes"
	"github.com/blucialabs/backend/internal/services"
)

// New builds the fully wired HTTP server. The returned pool is owned by the
// caller and must be closed after the server shuts down.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*http.Server, *pgxpool.Pool, error) {
	if cfg.UsingDefaultSecret {
		logger.Warn("JWT_SECRET is not set; using the insecure development default")
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.EnsureAdminUser(ctx, pool, cfg.Admin); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to seed admin user: %w", err)
	}
	logger.Info("admin account ready", zap.String("username", cfg.Admin.Username))

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	requestRepo := repositories.NewRequestRepository(pool)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	dispatcher := mailer.NewAsyncDispatcher(smtpMailer, logger)

	authService := services.NewAuthService(userRepo, dispatcher, cfg.JWTSecret, cfg.FrontendURL, logger)
	googleService := services.NewGoogleAuthService(userRepo, logger)
	userService := services.NewUserService(userRepo)
	requestService := services.NewRequestService(requestRepo, userRepo, dispatcher, smtpMailer, cfg.SMTP.AdminEmail, logger)

	oauthConfig := config.OAuthConfig(cfg.Google)
	if oauthConfig == nil {
		logger.Info("Google OAuth not configured; sign-in with Google is disabled")
	}

	authHandler := handlers.NewAuthHandler(authService)
	googleHandler := handlers.NewGoogleAuthHandler(googleService, oauthConfig, dispatcher, cfg.JWTSecret, cfg.FrontendURL, logger)
	userHandler := handlers.NewUserHandler(userService)
	requestHandler := handlers.NewRequestHandler(requestService)
	adminHandler := handlers.NewAdminHandler(requestService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, cfg.JWTSecret, authHandler, googleHandler, userHandler, requestHandler, adminHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv, pool, nil
}
