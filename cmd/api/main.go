package main

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/foodgram-project/backend/config"
	"github.com/foodgram-project/backend/internal/database"
	"github.com/foodgram-project/backend/internal/server"
	"github.com/foodgram-project/backend/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it the API runs unthrottled.
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			redisClient = nil
		}
	}

	var s3Config *config.S3Config
	if cfg.S3Bucket != "" {
		s3Config, err = config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure S3 storage")
		}
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to apply bucket policy")
		}
	}
	images := service.NewImageService(s3Config, cfg.MediaDir, cfg.MediaURL)

	srv := server.NewServer(server.Config{
		DB:        db,
		Redis:     redisClient,
		Images:    images,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger,
	})

	if err := srv.Start(cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
