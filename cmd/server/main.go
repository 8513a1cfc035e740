package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/haven/api/internal/config"
	"github.com/forgo/haven/api/internal/database"
	"github.com/forgo/haven/api/internal/handler"
	"github.com/forgo/haven/api/internal/jobs"
	"github.com/forgo/haven/api/internal/middleware"
	"github.com/forgo/haven/api/internal/repository"
	"github.com/forgo/haven/api/internal/service"
	"github.com/forgo/haven/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	serverRepo := repository.NewServerRepository(db)
	channelRepo := repository.NewChannelRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Signer:   jwtService,
	})

	inviteService := service.NewInviteService(service.InviteServiceConfig{
		InviteRepo:        inviteRepo,
		ServerRepo:        serverRepo,
		ChannelRepo:       channelRepo,
		UserRepo:          userRepo,
		MaxServersPerUser: cfg.Limits.MaxServersPerUser,
		MaxGroupSize:      cfg.Limits.MaxGroupSize,
	})

	pushService := service.NewPushService(service.PushServiceConfig{
		SubRepo: userRepo,
		Logger:  logger,
		Enabled: cfg.Push.Enabled,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Sweep dangling invites in the background
	inviteSweeper := jobs.NewInviteSweeper(inviteService, 1*time.Hour)
	inviteSweeper.Start()
	defer inviteSweeper.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	inviteHandler := handler.NewInviteHandler(inviteService)
	pushHandler := handler.NewPushHandler(pushService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(db)
	mux.HandleFunc("GET /health", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(authService)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Invite endpoints. The preview is public so a logged-out user can see
	// what an invite link points at before signing in.
	mux.HandleFunc("GET /v1/invites/{inviteId}", inviteHandler.Get)
	mux.Handle("POST /v1/invites/{inviteId}/join", authMiddleware(http.HandlerFunc(inviteHandler.Join)))
	mux.Handle("DELETE /v1/invites/{inviteId}", authMiddleware(http.HandlerFunc(inviteHandler.Delete)))
	mux.Handle("POST /v1/channels/{channelId}/invites", authMiddleware(http.HandlerFunc(inviteHandler.Create)))

	// Push subscription endpoints
	mux.Handle("POST /v1/push/subscribe", authMiddleware(http.HandlerFunc(pushHandler.Subscribe)))
	mux.Handle("POST /v1/push/unsubscribe", authMiddleware(http.HandlerFunc(pushHandler.Unsubscribe)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
