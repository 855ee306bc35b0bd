package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/api"
	"github.com/foodgram-project/backend/internal/middleware"
	"github.com/foodgram-project/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	logger zerolog.Logger
}

// Config carries the collaborators the server wires together. Redis is
// optional; when nil the rate limiter is not installed.
type Config struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Images    *service.ImageService
	JWTSecret string
	Logger    zerolog.Logger
}

// NewServer creates a new server instance
func NewServer(cfg Config) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())
	if cfg.Redis != nil {
		limiter := middleware.NewRateLimiter(cfg.Redis, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     120,
			KeyPrefix: "ratelimit",
		})
		router.Use(limiter.RateLimitMiddleware())
	}

	authService := service.NewAuthService(cfg.DB, cfg.JWTSecret)
	userService := service.NewUserService(cfg.DB)
	followService := service.NewFollowService(cfg.DB)
	tagService := service.NewTagService(cfg.DB)
	ingredientService := service.NewIngredientService(cfg.DB)
	recipeService := service.NewRecipeService(cfg.DB)
	favoriteService := service.NewFavoriteService(cfg.DB)
	cartService := service.NewCartService(cfg.DB)

	root := router.Group("/api")
	api.NewAuthHandler(authService).RegisterRoutes(root)
	api.NewUserHandler(authService, userService, followService).RegisterRoutes(root)
	api.NewTagHandler(tagService).RegisterRoutes(root)
	api.NewIngredientHandler(ingredientService).RegisterRoutes(root)
	api.NewRecipeHandler(authService, recipeService, favoriteService, cartService, cfg.Images).RegisterRoutes(root)

	return &Server{
		router: router,
		db:     cfg.DB,
		logger: cfg.Logger,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the server and blocks until an interrupt arrives.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	s.logger.Info().Str("port", port).Msg("server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
