package cache

import (
	"context"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLTravelCostCache stores directed venue-to-venue walking costs per routing profile.
type SQLTravelCostCache struct {
	DB *sql.DB
}

func NewSQLTravelCostCache(db *sql.DB) *SQLTravelCostCache {
	return &SQLTravelCostCache{DB: db}
}

// Fetch cached costs for one origin and multiple destinations.
func (s *SQLTravelCostCache) GetMany(
	ctx context.Context,
	profile string,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "travelcost.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("travel cost cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get travel cost cache: origin must not be empty")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	q := `
	SELECT destination_place_id, distance_meters, duration_seconds
	FROM travel_cost_cache
	WHERE profile = $1
		AND origin_place_id = $2
		AND destination_place_id = ANY($3::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, profile, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get travel cost cache: query travel_cost_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(uniq))
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("get travel cost cache: scan rows: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel cost cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached costs for a single origin.
func (s *SQLTravelCostCache) PutMany(
	ctx context.Context,
	profile string,
	origin string,
	results map[string]ports.DistanceResult,
) (err error) {
	defer obs.Time(ctx, "travelcost.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("travel cost cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert travel cost cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel cost cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_cost_cache (profile, origin_place_id, destination_place_id, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (profile, origin_place_id, destination_place_id) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return fmt.Errorf("insert travel cost cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert travel cost cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, profile, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("insert travel cost cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel cost cache commit: %w", err)
	}

	return nil
}
