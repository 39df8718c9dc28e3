package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/unikampus/kampus-backend/internal/config"
	"github.com/unikampus/kampus-backend/internal/database"
	"github.com/unikampus/kampus-backend/internal/handler"
	"github.com/unikampus/kampus-backend/internal/middleware"
	"github.com/unikampus/kampus-backend/internal/migration"
	"github.com/unikampus/kampus-backend/internal/repository"
	"github.com/unikampus/kampus-backend/internal/routes"
	"github.com/unikampus/kampus-backend/internal/service"
	pkgcache "github.com/unikampus/kampus-backend/pkg/cache"
	"github.com/unikampus/kampus-backend/pkg/jwt"
	pkglogger "github.com/unikampus/kampus-backend/pkg/logger"
	pkgredis "github.com/unikampus/kampus-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath(env string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	dotenvFiles := config.LoadDotEnv(env)

	pkglogger.InitStructured(env, os.Getenv("LOG_LEVEL"))
	log := pkglogger.GetLogger()
	log.Info().Str("env", env).Strs("env_files", dotenvFiles).Msg("starting")

	configPath := getConfigPath(env)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}
	if os.Getenv("LOG_LEVEL") == "" {
		pkglogger.InitStructured(env, cfg.Log.Level)
		log = pkglogger.GetLogger()
	}
	config.LogResolved(log, cfg)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}
	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("reaction schema migration failed")
	}

	// Redis is optional: without it tallies are read from the database and writes are not rate limited
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = pkgredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, continuing without cache")
			redisClient = nil
		}
	}
	cacheService := pkgcache.NewService(redisClient, cfg.Reaction.TallyTTL())

	// Repositories & services
	memberRepo := repository.NewMemberRepository(db)
	pointRepo := repository.NewPointRepository(db)

	entryService := service.NewEntryReactionService(db, cfg.Reaction.EntryPoints, cacheService, log)
	answerService := service.NewAnswerReactionService(db, cfg.Reaction.AnswerPoints, cacheService, log)
	questionLikeService := service.NewQuestionLikeService(db, cfg.Reaction.QuestionLikePoints, cacheService, log)
	memberService := service.NewMemberService(memberRepo, pointRepo)

	// Router
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", handler.NewHealthHandler(db, cacheService).Health)

	routes.Setup(router, routes.Handlers{
		EntryReactions:  handler.NewReactionHandler(entryService),
		AnswerReactions: handler.NewReactionHandler(answerService),
		QuestionLikes:   handler.NewQuestionLikeHandler(questionLikeService),
		Members:         handler.NewMemberHandler(memberService),
	}, jwt.NewManager(cfg.JWT.Secret), memberService, redisClient, cfg.Reaction.WriteRateLimit)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
