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

	"github.com/oksasatya/go-clinic-api/config"
	"github.com/oksasatya/go-clinic-api/internal/container"
	"github.com/oksasatya/go-clinic-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-clinic-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-clinic-api/internal/router"
	"github.com/oksasatya/go-clinic-api/pkg/helpers"
	"github.com/oksasatya/go-clinic-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))

	// Credential Store
	var stores router.Stores
	switch cfg.StorageDriver {
	case "memory":
		logger.Warn("STORAGE_DRIVER=memory: data is lost on restart")
		stores = router.MemoryStores(memory.NewStore())
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		stores = router.PostgresStores(pool)
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q (postgres|memory)", cfg.StorageDriver)
	}

	// Redis backs the shared rate limiter; without it each process limits on its own.
	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, using in-process rate limiter")
		} else {
			defer func() { _ = rdb.Close() }()
			container.SetRedis(rdb)
		}
	}

	// RabbitMQ: welcome email jobs for cmd/email_worker
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, registrations will not send emails")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch: patient search, database fallback otherwise
	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, patient search uses the database")
		} else {
			container.SetES(es)
		}
	}

	// Gin engine and global middleware
	r, err := router.NewEngine(cfg)
	if err != nil {
		logger.Fatalf("engine: %v", err)
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, router.DepsFromContainer(stores))
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
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
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
