package ports

import (
	"context"
	"crawl-route-service/internal/domain"
	"time"
)

// SearchCache stores ranked search results by an opaque key.
type SearchCache interface {
	Get(ctx context.Context, key string) ([]domain.Venue, bool, error)
	Put(ctx context.Context, key string, venues []domain.Venue, ttl time.Duration) error
}

// GeocodeCache maps normalized addresses to coordinates.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, address string, c domain.Coordinates) error
}

// TravelCostCache stores directed pairwise costs between venues for a routing profile.
type TravelCostCache interface {
	GetMany(ctx context.Context, profile, origin string, destinations []string) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, profile, origin string, results map[string]DistanceResult) error
}
