package main

import (
	"context"

	"github.com/arvindri2005/company-leetcode-explorer/internal/ai"
	"github.com/arvindri2005/company-leetcode-explorer/internal/cache"
	"github.com/arvindri2005/company-leetcode-explorer/internal/config"
	"github.com/arvindri2005/company-leetcode-explorer/internal/database"
	"github.com/arvindri2005/company-leetcode-explorer/internal/fetcher"
	"github.com/arvindri2005/company-leetcode-explorer/internal/handler"
	"github.com/arvindri2005/company-leetcode-explorer/internal/logger"
	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxConnLife)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		sugar.Fatal(err)
	}

	var catalogCache *cache.Cache
	if cfg.Redis.Addr != "" {
		redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, redisClient); err != nil {
			sugar.Warnw("redis unreachable, running without cache", "addr", cfg.Redis.Addr, "err", err)
		} else {
			catalogCache = cache.New(redisClient)
		}
	}

	repo := repository.NewRepository(pool)
	aiClient := ai.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)

	app := &application{
		DB:     pool,
		Logger: log,
		Config: cfg,
		Handler: &handler.Handler{
			Logger:   log,
			Repo:     repo,
			Cache:    catalogCache,
			CacheTTL: cfg.Cache,
			AI:       aiClient,
			Fetcher:  fetcher.NewFetcher(),
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
