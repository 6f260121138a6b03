package main

import (
	"context"
	"crawl-route-service/internal/adapters/repositories"
	"crawl-route-service/internal/config"
	"crawl-route-service/internal/platform/db"
	"crawl-route-service/internal/platform/obs"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	obs.Setup(cfg.LogLevel, "text")

	if cfg.DatabaseURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/venues.json")
	if err := initAndSeed(context.Background(), sqlDB, seedPath); err != nil {
		logrus.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) error {
	logrus.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return err
	}
	logrus.Info("Schema ready.")

	logrus.WithField("path", seedPath).Info("Seeding venues...")
	repo := repositories.NewPostgresVenueRepository(sqlx.NewDb(sqlDB, db.DriverName))
	n, err := repositories.SeedFromJSON(ctx, repo, seedPath)
	if err != nil {
		return err
	}
	logrus.WithField("venues", n).Info("Seeding complete.")

	return nil
}
