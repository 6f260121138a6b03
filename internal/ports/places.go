package ports

import (
	"context"
	"crawl-route-service/internal/domain"
)

type NearbyQuery struct {
	Origin       domain.Coordinates
	RadiusMeters int
	Category     string
	PageToken    string
}

// PlacesPage is one page of nearby results. NextPageToken is empty on the last page.
type PlacesPage struct {
	Results       []domain.RawPlace
	NextPageToken string
}

type KeywordQuery struct {
	Keyword      string
	Origin       domain.Coordinates
	RadiusMeters int
}

// Contract for the external places search service.
type PlacesSearcher interface {
	SearchNearby(ctx context.Context, q NearbyQuery) (PlacesPage, error)
	SearchByKeyword(ctx context.Context, q KeywordQuery) ([]domain.RawPlace, error)
}

// Contract for resolving a free-form address to coordinates.
// Implementations return a domain NotFound error when no candidate matches.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
