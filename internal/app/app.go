package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memory"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/quiz"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// Stores bundles the question repository and category store chosen by STORE_DRIVER.
type Stores struct {
	Questions  question.Repository
	Categories category.Store
	pool       *pgxpool.Pool
}

// OpenStores connects the configured backing store.
func OpenStores(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*Stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		mem := memory.NewStore(memory.DefaultCategories)
		return &Stores{Questions: mem, Categories: mem}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	q := queries.New(pool)
	return &Stores{
		Questions:  repository.NewQuestionRepository(q),
		Categories: repository.NewCategoryRepository(q),
		pool:       pool,
	}, nil
}

// Close releases the database pool, if any.
func (s *Stores) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// New bootstraps the logger, stores, cache, services and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.StoreDriver).Msg("starting application bootstrap")

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := map[string]server.Pinger{}
	if stores.pool != nil {
		deps["postgres"] = stores.pool
	}

	var (
		redisClient *redis.Client
		cache       category.Cache
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = category.NewRedisCache(redisClient, cfg.Cache.CategoryTTL)
		deps["redis"] = server.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	catalog := category.NewCatalog(stores.Categories, cache, logger)
	questionSvc := question.NewService(stores.Questions, logger)
	selector := quiz.NewSelector(stores.Questions, quiz.SelectorOptions{})

	apiServer := server.NewHTTPServer(cfg, logger, server.Handlers{
		Categories:   category.NewHTTPHandler(catalog, logger),
		Questions:    question.NewHTTPHandler(questionSvc, catalog, logger),
		Quiz:         quiz.NewHTTPHandler(selector, logger),
		Dependencies: deps,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   stores.pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.Close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

// Close releases the database pool and the Redis client.
func (a *Application) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
