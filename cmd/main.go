package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-post-api/config"
	"github.com/oksasatya/go-user-post-api/internal/container"
	pginfra "github.com/oksasatya/go-user-post-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-post-api/internal/infrastructure/search"
	"github.com/oksasatya/go-user-post-api/internal/interface/middleware"
	"github.com/oksasatya/go-user-post-api/internal/router"
	"github.com/oksasatya/go-user-post-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	c := &container.Container{Config: cfg, Logger: logger, PGPool: pool}

	// Redis entity cache (optional)
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; entity cache disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			defer func() { _ = rdb.Close() }()
		}
		cancel()
	}

	// RabbitMQ domain events (optional)
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unreachable; domain events disabled")
		} else {
			c.Rabbit = pub
			defer pub.Close()
		}
	}

	// Elasticsearch post search (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
		} else {
			c.PostIndex = search.NewPostIndex(es, cfg.ESPostsIndex, logger)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORS(cfg.CORSOrigins()))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	reg := router.NewRegistry(r, cfg.APIPrefix)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
