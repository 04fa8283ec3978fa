package main

import (
	"context"
	"cyber-map-service/internal/adapters/repositories"
	"cyber-map-service/internal/config"
	"cyber-map-service/internal/platform/db"
	"cyber-map-service/internal/platform/obs"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	logger, err := obs.NewLogger(config.Get("LOG_LEVEL", "info"), true)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", db.DriverSQLite)
	databaseURL := config.Get("DATABASE_URL", "data/app.db")

	conn, err := db.Open(driver, databaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/points.json")
	if err := initAndSeed(context.Background(), logger, conn, seedPath); err != nil {
		logger.Fatal("init and seed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, logger *zap.Logger, conn *sqlx.DB, seedPath string) error {
	logger.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	logger.Info("Schema ready.")

	logger.Info("Seeding database...", zap.String("seed_path", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return err
	}
	logger.Info("Seeding complete.")

	return nil
}
