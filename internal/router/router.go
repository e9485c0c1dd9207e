package router

import (
	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/handlers"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/metrics"
	"github.com/anonto42/chefhub/backend/internal/middleware"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Dependencies are the runtime collaborators the routes are built from
type Dependencies struct {
	Store     kv.Store
	Auth      echo.MiddlewareFunc
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *logger.Logger

	// Optional. FirebaseVerifier enables /auth/firebase-login together with JWTSecret.
	FirebaseVerifier middleware.TokenVerifier
	JWTSecret        string
	// Optional. IdentityDeleter removes identities on admin user deletion.
	IdentityDeleter services.IdentityDeleter
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewKVUserRepository(deps.Store)
	postRepo := repositories.NewKVPostRepository(deps.Store)
	convRepo := repositories.NewKVConversationRepository(deps.Store)
	notificationRepo := repositories.NewKVNotificationRepository(deps.Store)

	// --- Initialize Services ---
	graph := services.NewSocialGraph(userRepo)
	profiles := services.NewProfileService(userRepo, postRepo, convRepo, deps.IdentityDeleter)
	notifications := services.NewNotificationService(notificationRepo, deps.Publisher)
	feed := services.NewFeedService(postRepo, userRepo)
	posts := services.NewPostService(postRepo, userRepo)
	interactions := services.NewInteractionService(postRepo, userRepo)
	conversations := services.NewConversationService(convRepo, userRepo, graph)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(profiles, deps.FirebaseVerifier, deps.JWTSecret, log)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(deps.Auth)
	authHandler.RegisterSessionRoutes(api)

	handlers.NewUserHandler(profiles, log).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(graph, profiles, notifications, log).RegisterFollowRoutes(api)
	handlers.NewFeedHandler(feed, log).RegisterFeedRoutes(api)
	handlers.NewPostHandler(posts, log).RegisterPostRoutes(api)
	handlers.NewLikeHandler(interactions, notifications, log).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(interactions, notifications, log).RegisterCommentRoutes(api)
	handlers.NewRatingHandler(interactions, notifications, log).RegisterRatingRoutes(api)
	handlers.NewConversationHandler(conversations, notifications, log).RegisterConversationRoutes(api)
	handlers.NewMessageRequestHandler(conversations, notifications, log).RegisterMessageRequestRoutes(api)
	handlers.NewNotificationHandler(notifications, profiles, log).RegisterNotificationRoutes(api)

	log.Info("routes configured", "count", len(e.Routes()))
}
