package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"brainsmath/internal/config"
	"brainsmath/internal/database"
	"brainsmath/internal/handlers"
	"brainsmath/internal/repository"
	"brainsmath/internal/security"
	"brainsmath/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewResultRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var emailService *service.EmailService
	if cfg.SESFromEmail != "" {
		emailService, err = service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
		if err != nil {
			log.Fatalf("Failed to initialize email service: %v", err)
		}
	} else {
		log.Println("SES_FROM_EMAIL not set, outbound email disabled")
	}

	authService := service.NewAuthService(userRepo, settingsRepo, tokens, emailService, cfg.AppBaseURL)
	scoreService := service.NewScoreService(resultRepo)
	leaderboardService := service.NewLeaderboardService(resultRepo, cfg.LeaderboardPageSize)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(scoreService, settingsRepo)
	resultHandler := handlers.NewResultHandler(scoreService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	oauthHandler := handlers.NewOAuthHandler(cfg, authService)

	// 10 attempts per minute per IP on credential endpoints
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/hi", authHandler.Hi)

	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/token", middleware.RateLimit(authHandler.Token))
	mux.HandleFunc("POST /api/token/refresh", middleware.RateLimit(authHandler.TokenRefresh))
	mux.HandleFunc("POST /api/auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	if oauthHandler != nil {
		mux.HandleFunc("GET /api/auth/google/start", oauthHandler.Start)
		mux.HandleFunc("GET /api/auth/google/callback", oauthHandler.Callback)
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	mux.HandleFunc("GET /api/user", middleware.RequireAuth(userHandler.Profile))
	mux.HandleFunc("PUT /api/user", middleware.RequireAuth(userHandler.UpdateSettings))
	mux.HandleFunc("GET /api/user/settings", middleware.RequireAuth(userHandler.GetSettings))
	mux.HandleFunc("PUT /api/user/settings", middleware.RequireAuth(userHandler.UpdateSettings))
	mux.HandleFunc("POST /api/tests", middleware.RequireAuth(resultHandler.Submit))

	mux.HandleFunc("GET /api/leaderboard", leaderboardHandler.Page)
	mux.HandleFunc("GET /api/leaderboard/rank", leaderboardHandler.UserRank)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux, cfg.Debug),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Reset tokens expire after an hour; sweep them periodically
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := userRepo.DeleteExpiredPasswordResetTokens(); err != nil {
				log.Printf("Failed to clean up expired reset tokens: %v", err)
			}
		}
	}()

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
