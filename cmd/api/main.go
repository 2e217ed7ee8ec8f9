// Blog platform API server.
//
// @title        Blog Platform API
// @version      1.0
// @description  Multi-tenant blog API: posts, comments, stats, saved posts,
// @description  and identity-provider user sync.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell/blog-platform/internal/api"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/service"
	mongodb "github.com/inkwell/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-platform/internal/infrastructure/imagekit"
	"github.com/inkwell/blog-platform/internal/infrastructure/queue"
	"github.com/inkwell/blog-platform/internal/pkg/config"
	"github.com/inkwell/blog-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, postRepo, commentRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Services ---
	postService := service.NewPostService(postRepo, userRepo, log)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, log)
	statsService := service.NewStatsService(postRepo, commentRepo, userRepo, log)
	userService := service.NewUserService(userRepo, postRepo, log)

	dedup := redisdb.NewDeliveryDedup(rdb)
	identityService := service.NewIdentityEventService(userRepo, postRepo, commentRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.WebhookWorkers, identityService, log)
	dispatcher.Start(ctx)

	verifier, err := middleware.NewWebhookVerifier(cfg.WebhookSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid webhook secret")
	}
	signer := imagekit.NewSigner(cfg.ImageKit.PublicKey, cfg.ImageKit.PrivateKey)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Mongo:      db,
		Redis:      rdb,
		Posts:      postService,
		Comments:   commentService,
		Stats:      statsService,
		Users:      userService,
		Dispatcher: dispatcher,
		Verifier:   verifier,
		Signer:     signer,
		JWTSecret:  cfg.SessionSecret,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
