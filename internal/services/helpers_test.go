package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"sync"
	"time"
)

func ptr[T any](v T) *T { return &v }

func raw(id, name string, rating *float64, types ...string) domain.RawPlace {
	return domain.RawPlace{
		PlaceID:  id,
		Name:     name,
		Vicinity: ptr("1 Main St"),
		Location: domain.Coordinates{Lon: -75.16, Lat: 39.95},
		Rating:   rating,
		Types:    types,
	}
}

func venueAt(id, name string, lat, lon float64) domain.Venue {
	return domain.Venue{PlaceID: id, Name: name, Latitude: lat, Longitude: lon}
}

type memSearchCache struct {
	mu    sync.Mutex
	items map[string][]domain.Venue
	puts  int
}

func newMemSearchCache() *memSearchCache {
	return &memSearchCache{items: map[string][]domain.Venue{}}
}

func (c *memSearchCache) Get(_ context.Context, key string) ([]domain.Venue, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memSearchCache) Put(_ context.Context, key string, venues []domain.Venue, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = venues
	c.puts++
	return nil
}

type memTravelCostCache struct {
	mu   sync.Mutex
	rows map[string]ports.DistanceResult
}

func newMemTravelCostCache() *memTravelCostCache {
	return &memTravelCostCache{rows: map[string]ports.DistanceResult{}}
}

func (c *memTravelCostCache) GetMany(_ context.Context, profile, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]ports.DistanceResult{}
	for _, d := range destinations {
		if r, ok := c.rows[profile+"|"+origin+"|"+d]; ok {
			out[d] = r
		}
	}
	return out, nil
}

func (c *memTravelCostCache) PutMany(_ context.Context, profile, origin string, results map[string]ports.DistanceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for d, r := range results {
		c.rows[profile+"|"+origin+"|"+d] = r
	}
	return nil
}
