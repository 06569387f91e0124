package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cityhelp-be/authz"
	"cityhelp-be/cache"
	"cityhelp-be/classifier"
	"cityhelp-be/config"
	"cityhelp-be/controllers"
	"cityhelp-be/logger"
	"cityhelp-be/routes"
	"cityhelp-be/services"
	"cityhelp-be/storage"
	"cityhelp-be/stores"
	authUtils "cityhelp-be/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logging)
	if cfg.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := config.ConnectDB(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connection established")

	if err := config.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := config.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	var statsCache services.StatsCache
	if rdb != nil {
		defer rdb.Close()
		statsCache = cache.NewStatsCache(rdb, cache.DefaultStatsKey, cfg.Stats.CacheTTL)
	} else {
		logger.Warn().Msg("redis disabled: no report rate limit or stats cache")
	}

	az, err := authz.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load authorization policy")
	}
	images, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("failed to prepare upload directory")
	}

	issueStore := stores.NewIssueStore(db)
	userStore := stores.NewUserStore(db)
	voteStore := stores.NewVoteStore(db)
	tokens := authUtils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := routes.NewRouter(routes.Deps{
		Auth:   services.NewAuthService(userStore, tokens, az),
		Issues: services.NewIssueService(issueStore, userStore, voteStore, classifier.New(cfg.Classifier, nil), images, az, statsCache),
		Stats:  services.NewStatsService(issueStore, userStore, statsCache),
		Authz:  az,
		Redis:  rdb,

		CORSOrigins: cfg.Server.CORSOrigins,
		Cookie: controllers.CookieConfig{
			Domain:     cfg.Server.Domain,
			Production: cfg.Server.Production(),
			MaxAge:     tokens.TTL(),
		},
		MaxUploadBytes:  cfg.Uploads.MaxBytes,
		ReportsPerDay:   cfg.RateLimit.ReportsPerDay,
		RateLimitPrefix: cfg.RateLimit.KeyPrefix,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           routes.WithTimeout(router, cfg.Server.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
