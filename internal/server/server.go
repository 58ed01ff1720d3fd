// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"photogram/internal/cache"
	"photogram/internal/config"
	"photogram/internal/database"
	"photogram/internal/media"
	"photogram/internal/middleware"
	"photogram/internal/models"
	"photogram/internal/repository"
	"photogram/internal/service"
	"photogram/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Prometheus collectors register globally, so the middleware is built once
// and shared by every Server instance (tests construct several).
var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

func promMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New("photogram")
	})
	return promInst
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	prom           *fiberprometheus.FiberPrometheus
	sessions       *session.Manager
	media          *media.Store
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	followRepo     repository.FollowRepository
	accountService *service.AccountService
	feedService    *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := media.NewStore(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		prom:           promMetrics(),
		sessions:       session.NewManager(cfg.SessionSecret, redisClient),
		media:          store,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
	}
	server.accountService = service.NewAccountService(userRepo, profileRepo)
	server.feedService = service.NewFeedService(userRepo, profileRepo, postRepo, followRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing spans
	app.Use(middleware.Tracing())

	// Prometheus metrics
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
		app.Use(s.prom.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid so the ID is available)
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	// Uploaded images
	app.Static("/media", s.media.Root())

	// Account routes (no session required)
	app.Get("/signup", s.SignupPage)
	app.Post("/signup", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	app.Get("/signin", s.SigninPage)
	app.Post("/signin", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "signin"), s.Signin)

	// Everything else needs a session
	protected := app.Group("", middleware.AuthRequired(s.sessions))
	protected.Get("/", s.Feed)
	protected.Post("/search", s.Search)
	protected.Post("/upload", middleware.RateLimit(
		s.redis, 10, time.Minute, "upload"), s.Upload)
	protected.Get("/like-post", s.LikePost)
	protected.Post("/delete-post", s.DeletePost)
	protected.Get("/profile/:username", s.ProfilePage)
	protected.Post("/follow", s.Follow)
	protected.Get("/settings", s.SettingsPage)
	protected.Post("/settings", s.UpdateSettings)
	protected.Get("/logout", s.Logout)
}

// HealthCheck reports database and Redis connectivity.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds the Fiber application with middleware and routes attached.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:   "Photogram",
		BodyLimit: media.MaxUploadBytes + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.Error("unhandled error", "error", err, "path", c.Path())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
