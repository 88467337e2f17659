package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

func main() {
	var (
		amount     = flag.Int("amount", 10, "Number of questions to fetch (OpenTDB caps this at 50)")
		difficulty = flag.String("difficulty", "", "Difficulty filter: easy, medium, hard or empty for any")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)
	if err := checkDriver(cfg); err != nil {
		logger.Fatal().Err(err).Msg("refusing to import")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open stores")
	}
	defer stores.Close()

	client := importer.NewOpenTDBClient(cfg.Importer.OpenTDBURL, &http.Client{Timeout: cfg.Importer.HTTPTimeout})
	job := importer.New(
		client,
		category.NewCatalog(stores.Categories, nil, logger),
		question.NewService(stores.Questions, logger),
		importer.Options{Difficulty: *difficulty},
		logger,
	)

	summary, err := job.Run(ctx, *amount)
	if err != nil {
		logger.Error().Err(err).Int("imported", summary.Imported).Msg("import failed")
		os.Exit(1)
	}
}

// checkDriver rejects stores that do not outlive the process.
func checkDriver(cfg *config.App) error {
	if cfg.StoreDriver == config.StoreMemory {
		return fmt.Errorf("STORE_DRIVER=%s discards imported questions on exit; use %s", config.StoreMemory, config.StorePostgres)
	}
	return nil
}
