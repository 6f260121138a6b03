package repositories

import (
	"context"
	"crawl-route-service/internal/domain"
	"strings"
	"sync"
)

// MemoryVenueRepository keeps venues in process. Used when no database is configured.
type MemoryVenueRepository struct {
	mu     sync.RWMutex
	venues map[string]domain.Venue
}

func NewMemoryVenueRepository() *MemoryVenueRepository {
	return &MemoryVenueRepository{venues: make(map[string]domain.Venue)}
}

func (r *MemoryVenueRepository) UpsertVenues(_ context.Context, venues []domain.Venue) error {
	for _, v := range venues {
		if strings.TrimSpace(v.PlaceID) == "" {
			return domain.InvalidInput("upsert venues", "venue has empty place_id", v.Name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range venues {
		r.venues[v.PlaceID] = v
	}

	return nil
}

func (r *MemoryVenueRepository) GetVenuesByIDs(_ context.Context, ids []string) ([]domain.Venue, error) {
	ids = uniqueIDs(ids)

	r.mu.RLock()
	found := make([]domain.Venue, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.venues[id]; ok {
			found = append(found, v)
		}
	}
	r.mu.RUnlock()

	return orderByIDs(ids, found)
}

// Len reports how many distinct venues are stored.
func (r *MemoryVenueRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.venues)
}
