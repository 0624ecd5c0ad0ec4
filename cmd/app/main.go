package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/post-service/internal/cache"
	"github.com/BloggingApp/post-service/internal/config"
	"github.com/BloggingApp/post-service/internal/events"
	"github.com/BloggingApp/post-service/internal/handler"
	"github.com/BloggingApp/post-service/internal/metrics"
	"github.com/BloggingApp/post-service/internal/repository"
	"github.com/BloggingApp/post-service/internal/repository/postgres"
	"github.com/BloggingApp/post-service/internal/service"
	"github.com/BloggingApp/post-service/internal/storage"
	"github.com/BloggingApp/post-service/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger, _ := zap.NewProduction()

	if err := config.LoadEnv(); err != nil {
		bootLogger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	logger, err := config.NewLogger(cfg.App.LogLevel)
	if err != nil {
		bootLogger.Sugar().Fatalf("failed to build logger: %s", err.Error())
	}
	defer logger.Sync()

	if cfg.Secrets.AccessSecret == "" {
		logger.Fatal("ACCESS_SECRET is not set")
	}

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.App.Env,
		SampleRatio: cfg.Otel.SampleRatio,
	})
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize tracing: %s", err.Error())
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	poolConfig, err := pgxpool.ParseConfig(cfg.Postgres.URL)
	if err != nil {
		logger.Sugar().Fatalf("failed to parse postgres url: %s", err.Error())
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Fatalf("failed to ping postgres: %s", err.Error())
	}

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Sugar().Fatalf("failed to migrate postgres: %s", err.Error())
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Sugar().Errorf("failed to ping redis, feed cache may be unavailable: %s", err.Error())
		}
	}

	repos := repository.New(db, rdb)

	feedCache := cache.Nop()
	if repos.Redis != nil {
		feedCache = cache.NewRedis(repos.Redis.Default, cfg.Feed.CacheTTL)
	}

	publisher := events.NopPublisher()
	if cfg.Kafka.Brokers != "" {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	var attachments storage.Attachments
	if cfg.Minio.Endpoint != "" {
		minioStorage, err := storage.NewMinio(storage.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
		})
		if err != nil {
			logger.Sugar().Fatalf("failed to create minio client: %s", err.Error())
		}
		if err := minioStorage.EnsureBucket(ctx); err != nil {
			logger.Sugar().Fatalf("failed to ensure minio bucket(%s): %s", cfg.Minio.Bucket, err.Error())
		}
		attachments = minioStorage
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.New(service.Deps{
		Logger:    logger,
		Repo:      repos,
		Cache:     feedCache,
		Publisher: publisher,
		Storage:   attachments,
		Metrics:   metrics.New(registry),
		Options: service.Options{
			PageSize:       cfg.Feed.PageSize,
			PostMinTextLen: cfg.Posts.MinTextLen,
			PostMaxTextLen: cfg.Posts.MaxTextLen,
			MaxImageBytes:  cfg.Posts.MaxImageBytes,
			CommentMinLen:  cfg.Comments.MinTextLen,
			PostsTopic:     cfg.Kafka.PostsTopic,
			CommentsTopic:  cfg.Kafka.CommentsTopic,
		},
	})

	handlers := handler.New(logger, services, handler.Options{
		AccessSecret: cfg.Secrets.AccessSecret,
		Origin:       cfg.Client.Origin,
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              cfg.App.Port,
		Handler:           otelhttp.NewHandler(handlers.InitRoutes(), "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		logger.Sugar().Infof("post-service listening on %s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to serve http: %s", err.Error())
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}
