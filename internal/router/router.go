package router

import (
	"time"

	"github.com/anonto42/yatube/backend/internal/handlers"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/anonto42/yatube/backend/internal/storage"
	"github.com/anonto42/yatube/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the collaborators SetupRoutes does not build itself.
type Options struct {
	Logger    *zap.Logger
	JWTSecret string
	JWTTTL    time.Duration
	// Images is nil when MongoDB is not configured.
	Images storage.ImageStore
	// FirebaseAuth is nil when Firebase is not configured.
	FirebaseAuth middleware.IDTokenVerifier
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	v := validators.NewValidator()
	e.Validator = v
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	// --- Services ---
	feedService := services.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	postService := services.NewPostService(postRepo, groupRepo, userRepo, commentRepo, opts.Images, v)
	commentService := services.NewCommentService(commentRepo, postRepo, v)
	groupService := services.NewGroupService(groupRepo, v)
	userService := services.NewUserService(userRepo, v)

	if opts.FirebaseAuth != nil {
		authGroup := e.Group("/api/v1/auth")
		handlers.NewAuthHandler(userService, opts.JWTSecret, opts.JWTTTL).RegisterAuthRoutes(authGroup, opts.FirebaseAuth)
		log.Info("Auth routes configured")
	} else {
		log.Warn("Firebase not configured, /api/v1/auth/firebase-login disabled")
	}

	// Anonymous viewers may read; writes need a token.
	api := e.Group("/api/v1", middleware.OptionalJWTAuthMiddleware(opts.JWTSecret, userRepo))
	requireAuth := middleware.JWTAuthMiddleware(opts.JWTSecret, userRepo)

	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api, requireAuth)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api, requireAuth)
	handlers.NewCommentHandler(commentService, postService).RegisterCommentRoutes(api, requireAuth)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api, requireAuth)
	handlers.NewGroupHandler(groupService).RegisterGroupRoutes(api)
	handlers.NewUserHandler(userService).RegisterProfileRoutes(api, requireAuth)

	if opts.Images != nil {
		handlers.NewMediaHandler(opts.Images).RegisterMediaRoutes(e)
	}

	log.Info("All routes configured")
}
