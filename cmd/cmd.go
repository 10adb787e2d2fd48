package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hangouts-backend/internal/config"
	"hangouts-backend/internal/handlers"
	"hangouts-backend/internal/middleware"
	"hangouts-backend/internal/migrate"
	"hangouts-backend/internal/repository"
	"hangouts-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Apply migrations
	if err := migrate.Up(context.Background(), cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Connect to database
	db, err := repository.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	hangoutRepo := repository.NewHangoutRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.Auth.JWTSecret)
	contactService := services.NewContactService(contactRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	hangoutService := services.NewHangoutService(hangoutRepo)
	interestService := services.NewInterestService(interestRepo)
	avatarService, err := services.NewAvatarService(
		userRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create avatar service")
	}
	wsHub := services.NewWSHub()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, avatarService)
	contactHandler := handlers.NewContactHandler(contactService, wsHub)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	hangoutHandler := handlers.NewHangoutHandler(hangoutService)
	interestHandler := handlers.NewInterestHandler(interestService)
	healthHandler := handlers.NewHealthHandler(db)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Identity-bound routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(userService))
				r.Get("/me", userHandler.Me)
				r.Post("/sync", userHandler.Sync)
				r.Post("/{id}/avatar/upload", userHandler.AvatarUpload)
			})

			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/contacts", func(r chi.Router) {
			// Categories are declared before the dynamic {contactId} routes to
			// avoid shadowing
			r.Get("/{userId}/categories", categoryHandler.List)
			r.Post("/{userId}/categories", categoryHandler.Create)
			r.Put("/{userId}/categories/{categoryId}", categoryHandler.Update)
			r.Delete("/{userId}/categories/{categoryId}", categoryHandler.Delete)

			r.Get("/{userId}/requests/pending", contactHandler.ListPending)
			r.Post("/{userId}/requests/{contactId}/accept", contactHandler.Accept)
			r.Post("/{userId}/requests/{contactId}/reject", contactHandler.Reject)

			r.Get("/{userId}", contactHandler.ListAccepted)
			r.Post("/{userId}", contactHandler.SendRequest)
			r.Put("/{userId}/{contactId}", contactHandler.UpdateCategory)
			r.Delete("/{userId}/{contactId}", contactHandler.Remove)
		})

		r.Route("/hangouts", func(r chi.Router) {
			r.Get("/", hangoutHandler.List)
			r.Post("/", hangoutHandler.Create)
			r.Get("/{id}", hangoutHandler.Get)
			r.Put("/{id}", hangoutHandler.Update)
			r.Delete("/{id}", hangoutHandler.Delete)

			r.Get("/{id}/visibility", hangoutHandler.ListVisibility)
			r.Post("/{id}/visibility", hangoutHandler.AddVisibility)
			r.Delete("/{id}/visibility/{visibilityId}", hangoutHandler.RemoveVisibility)
		})

		r.Route("/interests", func(r chi.Router) {
			r.Get("/", interestHandler.List)
			r.Post("/", interestHandler.Create)
			r.Put("/{id}", interestHandler.Update)
			r.Delete("/{id}", interestHandler.Delete)

			r.Get("/user/{userId}", interestHandler.ListUserInterests)
			r.Post("/user/{userId}", interestHandler.AddUserInterest)
			r.Delete("/user/{userId}/{interestId}", interestHandler.RemoveUserInterest)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
