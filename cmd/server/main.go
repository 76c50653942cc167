package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"dgdorm/server/config"
	"dgdorm/server/internal/api"
	"dgdorm/server/internal/database"
	"dgdorm/server/internal/favorites"
	"dgdorm/server/internal/location"
	"dgdorm/server/internal/moderation"
	"dgdorm/server/internal/query"
	"dgdorm/server/internal/uploads"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Redis backs the token blacklist. The server still runs without it;
	// revocation just stops working.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unavailable, token revocation disabled")
		rdb = nil
	}

	uploadStore, err := uploads.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize upload store")
	}

	queryEngine := query.NewEngine(db, logger)
	machine := moderation.NewMachine(db, logger,
		cfg.BanCascade.MaxRetries,
		time.Duration(cfg.BanCascade.RetryDelay)*time.Second)
	favoritesManager := favorites.NewManager(db, logger)
	locationService := location.NewService(db, logger)

	// Surface any ban cascades that never finished on a previous run.
	pending, err := db.PendingCascades(context.Background())
	if err != nil {
		logger.WithError(err).Error("Failed to check pending ban cascades")
	} else if len(pending) > 0 {
		logger.WithField("count", len(pending)).Warn("Pending ban cascades need reconciliation")
	}

	handler := api.NewHandler(db, queryEngine, machine, favoritesManager, locationService, uploadStore, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler, cfg, rdb)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
