package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linklytics/linklytics/internal/config"
	"github.com/linklytics/linklytics/internal/handler"
	"github.com/linklytics/linklytics/internal/logger"
	"github.com/linklytics/linklytics/internal/middleware"
	"github.com/linklytics/linklytics/internal/repository/postgres"
	rediscache "github.com/linklytics/linklytics/internal/repository/redis"
	"github.com/linklytics/linklytics/internal/service"
	"github.com/linklytics/linklytics/pkg/geo"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logg := logger.Get()
	logg.Info("Starting linklytics service",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		logg.Error("Failed to setup database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := setupRedis(cfg)
	if err != nil {
		logg.Error("Failed to setup redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	geoResolver := setupGeo(cfg, logg)

	linkRepo := postgres.NewLinkRepository(dbPool)
	visitRepo := postgres.NewVisitRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	cache := rediscache.NewCache(redisClient)

	resolverService := service.NewResolverService(linkRepo, visitRepo, cache, geoResolver, cfg.Cache.RedirectTTL)
	analyticsService := service.NewAnalyticsService(linkRepo, visitRepo, cache, cfg.Server.BaseURL, cfg.Cache.AnalyticsTTL)
	authService := service.NewAuthService(userRepo, cfg.Auth)

	shortenerHandler := handler.NewShortenerHandler(resolverService, cfg.Server.BaseURL)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(dbPool, redisClient)

	router := setupRouter(cfg, shortenerHandler, analyticsHandler, authHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg.Server.ShutdownTimeout, dbPool, redisClient, logg)
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	if err := dbPool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return dbPool, nil
}

func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

func setupGeo(cfg *config.Config, logg *slog.Logger) geo.Resolver {
	if cfg.Geo.DBPath == "" {
		logg.Warn("GEOIP_DB_PATH not set, visits will carry empty geolocation")
		return geo.Noop{}
	}

	resolver, err := geo.Open(cfg.Geo.DBPath)
	if err != nil {
		logg.Warn("Failed to open GeoIP database, visits will carry empty geolocation",
			"path", cfg.Geo.DBPath, "error", err)
		return geo.Noop{}
	}

	return resolver
}

func setupRouter(
	cfg *config.Config,
	shortenerHandler *handler.ShortenerHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// health check
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)

	router.GET("/auth/google/login", authHandler.Login)
	router.GET("/auth/google/callback", authHandler.Callback)

	api := router.Group("/api")
	{
		api.POST("/shorten",
			middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
			middleware.Auth(cfg.Auth.JWTSecret),
			shortenerHandler.ShortenURL,
		)

		api.GET("/shorten/:shortId", shortenerHandler.Redirect)

		api.GET("/analytics/overall", middleware.Auth(cfg.Auth.JWTSecret), analyticsHandler.GetOverallAnalytics)
		api.GET("/analytics/topic/:topic", analyticsHandler.GetTopicAnalytics)
		api.GET("/analytics/:shortId", analyticsHandler.GetLinkAnalytics)
	}

	return router
}

func gracefulShutdown(srv *http.Server, timeout time.Duration, dbPool *pgxpool.Pool, redisClient *redis.Client, logg *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logg.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("Forced shutdown", "error", err)
	}

	dbPool.Close()
	logg.Info("Database connection closed")

	if err := redisClient.Close(); err != nil {
		logg.Error("Error closing Redis", "error", err)
	}

	logg.Info("Graceful shutdown completed")
}
