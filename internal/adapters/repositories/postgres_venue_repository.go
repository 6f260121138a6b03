package repositories

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Postgres-backed implementation of the VenueRepository port.
type PostgresVenueRepository struct{ DB *sqlx.DB }

func NewPostgresVenueRepository(db *sqlx.DB) *PostgresVenueRepository {
	return &PostgresVenueRepository{DB: db}
}

const upsertVenueQuery = `
INSERT INTO venues (place_id, name, address, latitude, longitude, rating, user_ratings_total)
VALUES (:place_id, :name, :address, :latitude, :longitude, :rating, :user_ratings_total)
ON CONFLICT (place_id) DO UPDATE
SET name = EXCLUDED.name,
	address = EXCLUDED.address,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	rating = EXCLUDED.rating,
	user_ratings_total = EXCLUDED.user_ratings_total,
	updated_at = now();
`

// Insert or overwrite venues keyed by place_id in a single transaction.
func (r *PostgresVenueRepository) UpsertVenues(ctx context.Context, venues []domain.Venue) (err error) {
	defer obs.Time(ctx, "venues.UpsertVenues")(&err)

	if r.DB == nil {
		return errors.New("postgres venue repository: DB is nil")
	}

	if len(venues) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert venues: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range venues {
		if strings.TrimSpace(v.PlaceID) == "" {
			return domain.InvalidInput("upsert venues", "venue has empty place_id", v.Name)
		}

		if _, err := tx.NamedExecContext(ctx, upsertVenueQuery, v); err != nil {
			return fmt.Errorf("upsert venues: place_id=%q: %w", v.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert venues: commit tx: %w", err)
	}

	return nil
}

// Return venues for ids in request order. Unknown ids fail with NotFound.
func (r *PostgresVenueRepository) GetVenuesByIDs(ctx context.Context, ids []string) (_ []domain.Venue, err error) {
	defer obs.Time(ctx, "venues.GetVenuesByIDs")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres venue repository: DB is nil")
	}

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []domain.Venue{}, nil
	}

	query, args, err := sqlx.In(`
	SELECT
		place_id,
		name,
		address,
		latitude::float8 AS latitude,
		longitude::float8 AS longitude,
		rating::float8 AS rating,
		user_ratings_total
	FROM venues
	WHERE place_id IN (?);
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("get venues: build query: %w", err)
	}

	var found []domain.Venue
	if err := r.DB.SelectContext(ctx, &found, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get venues: query venues table: %w", err)
	}

	return orderByIDs(ids, found)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func orderByIDs(ids []string, found []domain.Venue) ([]domain.Venue, error) {
	byID := make(map[string]domain.Venue, len(found))
	for _, v := range found {
		byID[v.PlaceID] = v
	}

	out := make([]domain.Venue, 0, len(ids))
	var missing []string
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, v)
	}

	if len(missing) > 0 {
		return nil, domain.NotFound("get venues", "unknown venue ids", missing...)
	}

	return out, nil
}
