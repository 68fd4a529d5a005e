package main

import (
	"context"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fastfood/internal/seed"
	"github.com/vladislavdragonenkov/fastfood/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger := log.WithField("component", "seed-cli")

	dsn := strings.TrimSpace(os.Getenv("FASTFOOD_POSTGRES_DSN"))
	if dsn == "" {
		logger.Fatal("FASTFOOD_POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		logger.WithError(err).Fatal("open postgres store")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("ensure schema")
	}

	result := seed.NewSeeder(postgres.NewProductRepository(store), logger).Run()
	logger.WithFields(log.Fields{
		"skipped": result.Skipped,
		"seeded":  result.Seeded,
		"failed":  result.Failed,
	}).Info("seed finished")
}
