package ports

import (
	"context"
	"crawl-route-service/internal/domain"
)

// Port: a boundary for persisting and retrieving Venue entities.
type VenueRepository interface {
	// Insert or overwrite venues keyed by place_id.
	UpsertVenues(ctx context.Context, venues []domain.Venue) error
	// Return the stored venues among ids; unknown ids are simply absent.
	GetVenuesByIDs(ctx context.Context, ids []string) ([]domain.Venue, error)
}
