// Package main runs the venue/artist/show listing HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stagelist/backend/config"
	"github.com/stagelist/backend/internal/artists"
	"github.com/stagelist/backend/internal/middleware"
	"github.com/stagelist/backend/internal/shows"
	"github.com/stagelist/backend/internal/venues"
	"github.com/stagelist/backend/pkg/database"
	"github.com/stagelist/backend/pkg/redis"
	"github.com/stagelist/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Redis only backs the rate limiter; the API runs without it.
	var rdb *goredis.Client
	if cfg.RateLimit.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("rate limiting disabled", zap.Error(err))
		} else {
			rdb = client.Client
			defer client.Close()
		}
	}

	// Venues
	venueRepo := venues.NewRepository(pool)

	// Artists
	artistRepo := artists.NewRepository(pool)

	// Shows
	showRepo := shows.NewRepository(pool)
	showHandler := shows.NewHandler(showRepo, logger)

	venueHandler := venues.NewHandler(venueRepo, showRepo, logger)
	artistHandler := artists.NewHandler(artistRepo, showRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.WithRequestID())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RateLimit(cfg.RateLimit, rdb, logger))

	// Home + health
	router.GET("/", index)
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Venues
	router.GET("/venues", venueHandler.List)
	router.POST("/venues/search", venueHandler.Search)
	router.GET("/venues/create", venueHandler.NewForm)
	router.POST("/venues/create", venueHandler.Create)
	router.GET("/venues/:id", venueHandler.GetByID)
	router.GET("/venues/:id/edit", venueHandler.EditForm)
	router.POST("/venues/:id/edit", venueHandler.Edit)
	router.DELETE("/venues/:id", venueHandler.Delete)

	// Artists
	router.GET("/artists", artistHandler.List)
	router.POST("/artists/search", artistHandler.Search)
	router.GET("/artists/create", artistHandler.NewForm)
	router.POST("/artists/create", artistHandler.Create)
	router.GET("/artists/:id", artistHandler.GetByID)
	router.GET("/artists/:id/edit", artistHandler.EditForm)
	router.POST("/artists/:id/edit", artistHandler.Edit)
	router.DELETE("/artists/:id", artistHandler.Delete)

	// Shows
	router.GET("/shows", showHandler.List)
	router.GET("/shows/create", showHandler.NewForm)
	router.POST("/shows/create", showHandler.Create)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// index is the landing route; it points clients at the top-level resources.
func index(c *gin.Context) {
	response.OK(c, gin.H{
		"name":    "stagelist",
		"venues":  "/venues",
		"artists": "/artists",
		"shows":   "/shows",
	})
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
