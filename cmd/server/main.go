package main

import (
	"context"
	"crawl-route-service/internal/adapters/cache"
	"crawl-route-service/internal/adapters/ors"
	"crawl-route-service/internal/adapters/places"
	"crawl-route-service/internal/adapters/repositories"
	"crawl-route-service/internal/api"
	"crawl-route-service/internal/config"
	"crawl-route-service/internal/platform/db"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/platform/redisx"
	"crawl-route-service/internal/ports"
	"crawl-route-service/internal/services"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS, Google Places) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	obs.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	if cfg.ORSAPIKey == "" {
		logrus.Fatal("ORS_API_KEY is required")
	}
	if cfg.GoogleMapsAPIKey == "" {
		logrus.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	ctx := context.Background()

	var (
		venueRepo    ports.VenueRepository
		geocodeCache ports.GeocodeCache
		travelCache  ports.TravelCostCache
		searchCache  ports.SearchCache
	)

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logrus.Fatal(err)
		}
		defer sqlDB.Close()

		if err := initAndSeed(ctx, sqlDB, cfg.SeedPath); err != nil {
			logrus.Fatal(err)
		}

		venueRepo = repositories.NewPostgresVenueRepository(sqlx.NewDb(sqlDB, db.DriverName))
		geocodeCache = cache.NewSQLGeocodeCache(sqlDB)
		travelCache = cache.NewSQLTravelCostCache(sqlDB)
	} else {
		logrus.Warn("DATABASE_URL not set; venues are kept in memory and lookups are not cached")
		venueRepo = repositories.NewMemoryVenueRepository()
	}

	if cfg.RedisURL != "" {
		client, err := redisx.Open(ctx, cfg.RedisURL)
		if err != nil {
			logrus.Fatal(err)
		}
		defer client.Close()
		searchCache = cache.NewRedisSearchCache(client)
	} else {
		logrus.Info("REDIS_URL not set; search results are not cached")
	}

	orsOpts := []ors.Option{ors.WithBaseURL(cfg.ORSBaseURL), ors.WithProfile(cfg.ORSProfile)}
	if geocodeCache != nil {
		orsOpts = append(orsOpts, ors.WithGeocodeCache(geocodeCache))
	}
	routing, err := ors.NewClient(cfg.ORSAPIKey, orsOpts...)
	if err != nil {
		logrus.Fatal(err)
	}

	placesClient, err := places.NewClient(
		cfg.GoogleMapsAPIKey,
		places.WithBaseURL(cfg.PlacesBaseURL),
		places.WithRateLimit(cfg.PlacesRateLimit),
	)
	if err != nil {
		logrus.Fatal(err)
	}

	aggCfg := services.DefaultAggregatorConfig()
	aggCfg.PageDelay = cfg.PlacesPageDelay
	aggregator := services.NewVenueAggregator(
		placesClient,
		services.NewVenueClassifier(services.DefaultClassifierConfig(cfg.ExcludeWorshipPlaces, cfg.RequireVenueAddress)),
		aggCfg,
	)

	search := services.NewSearchService(routing, aggregator, venueRepo, searchCache, cfg.SearchCacheTTL).
		WithDefaultRadius(cfg.DefaultRadiusMiles)
	itinerary := services.NewItineraryBuilder(routing)
	crawl := services.NewCrawlPlanner(
		venueRepo,
		services.NewDurationMatrixClient(routing, travelCache, routing.Profile()),
		itinerary,
	)

	router := api.NewRouter(api.Deps{
		Search:    search,
		Itinerary: itinerary,
		Crawl:     crawl,
		Venues:    venueRepo,
	})

	// Timeouts are tuned for cold-cache searches (paged upstream calls with mandatory delays).
	logrus.WithField("addr", ":"+cfg.Port).Info("Server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Server stopped")
		}
	case <-shutdownCtx.Done():
		logrus.Info("Shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logrus.WithError(err).Error("Graceful shutdown failed")
		}
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return err
	}

	if seedPath == "" {
		return nil
	}

	repo := repositories.NewPostgresVenueRepository(sqlx.NewDb(sqlDB, db.DriverName))
	n, err := repositories.SeedFromJSON(ctx, repo, seedPath)
	if err != nil {
		return err
	}
	logrus.WithField("venues", n).Info("seeded venues")

	return nil
}
