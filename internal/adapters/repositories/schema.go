package repositories

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for venues and the lookup caches.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVenuesQuery := `
	CREATE TABLE IF NOT EXISTS venues (
		place_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		latitude NUMERIC(10, 7) NOT NULL,
		longitude NUMERIC(10, 7) NOT NULL,
		rating NUMERIC(2, 1),
		user_ratings_total INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createTravelCostCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_cost_cache (
		profile TEXT NOT NULL,
		origin_place_id TEXT NOT NULL,
		destination_place_id TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		duration_seconds DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (profile, origin_place_id, destination_place_id)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_venues_rating
	ON venues(rating DESC NULLS LAST);
	`

	statements := []string{
		createVenuesQuery,
		createTravelCostCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the venue store from a JSON array of venues.
func SeedFromJSON(ctx context.Context, repo ports.VenueRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed venues: read %q: %w", jsonPath, err)
	}

	var data []domain.Venue
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed venues: parse json: %w", err)
	}

	rows := make([]domain.Venue, 0, len(data))
	for i, v := range data {
		v.PlaceID = strings.TrimSpace(v.PlaceID)
		if v.PlaceID == "" {
			return 0, fmt.Errorf("seed venues: item at index %d: place_id cannot be empty", i+1)
		}

		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return 0, fmt.Errorf("seed venues: item %q: name cannot be empty", v.PlaceID)
		}

		if err := v.Coordinates().Validate(); err != nil {
			return 0, fmt.Errorf("seed venues: item %q: %w", v.PlaceID, err)
		}

		v.Latitude = domain.RoundTo(v.Latitude, 7)
		v.Longitude = domain.RoundTo(v.Longitude, 7)
		rows = append(rows, v)
	}

	if err := repo.UpsertVenues(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed venues: %w", err)
	}

	return len(rows), nil
}
