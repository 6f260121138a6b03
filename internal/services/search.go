package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
)

// Origins within one precision-7 cell (about 150m) share cached results.
const searchKeyPrecision = 7

// SearchCacheKey identifies a ranked search by origin cell, radius and category.
func SearchCacheKey(origin domain.Coordinates, radiusMeters int, category string) string {
	cell := geohash.EncodeWithPrecision(origin.Lat, origin.Lon, searchKeyPrecision)
	return fmt.Sprintf("%s:%d:%s", cell, radiusMeters, category)
}

// SearchService resolves a search request into a ranked, persisted venue list.
type SearchService struct {
	geocoder   ports.Geocoder
	aggregator *VenueAggregator
	repo       ports.VenueRepository
	cache      ports.SearchCache
	cacheTTL   time.Duration

	defaultRadiusMiles float64
}

// NewSearchService wires the search pipeline. cache may be nil.
func NewSearchService(
	geocoder ports.Geocoder,
	aggregator *VenueAggregator,
	repo ports.VenueRepository,
	cache ports.SearchCache,
	cacheTTL time.Duration,
) *SearchService {
	return &SearchService{
		geocoder:   geocoder,
		aggregator: aggregator,
		repo:       repo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// WithDefaultRadius sets the radius used when a request gives none.
func (s *SearchService) WithDefaultRadius(miles float64) *SearchService {
	if miles > 0 {
		s.defaultRadiusMiles = miles
	}
	return s
}

func validateSearch(req domain.SearchRequest) error {
	hasAddress := strings.TrimSpace(req.Address) != ""
	switch {
	case !hasAddress && req.Origin == nil:
		return domain.InvalidInput("search", "an address or coordinates are required", "address", "lat", "lng")
	case hasAddress && req.Origin != nil:
		return domain.InvalidInput("search", "give either an address or coordinates, not both", "address", "lat", "lng")
	}

	if math.IsNaN(req.RadiusMiles) || math.IsInf(req.RadiusMiles, 0) || req.RadiusMiles < 0 {
		return domain.InvalidInput("search", "radius must be a positive number of miles", "radius")
	}
	if req.RadiusMiles > 0 && req.RadiusMiles*domain.MetersPerMile < domain.MinRadiusMeters {
		return domain.InvalidInput("search", "radius is smaller than one meter", "radius")
	}

	if req.Origin != nil {
		return req.Origin.Validate()
	}

	return nil
}

func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (_ *domain.SearchResult, err error) {
	defer obs.Time(ctx, "search.Search")(&err)

	if err := validateSearch(req); err != nil {
		return nil, err
	}

	if req.RadiusMiles == 0 && s.defaultRadiusMiles > 0 {
		req.RadiusMiles = s.defaultRadiusMiles
	}

	var origin domain.Coordinates
	if req.Origin != nil {
		origin = *req.Origin
	} else {
		origin, err = s.geocoder.Geocode(ctx, strings.TrimSpace(req.Address))
		if err != nil {
			return nil, fmt.Errorf("search: geocode %q: %w", req.Address, err)
		}
	}

	radiusMeters := req.RadiusMeters()
	category := req.Category()

	result := &domain.SearchResult{
		Address:      strings.TrimSpace(req.Address),
		Origin:       origin,
		RadiusMiles:  req.EffectiveRadiusMiles(),
		CategoryHint: category,
	}

	key := SearchCacheKey(origin, radiusMeters, category)
	if s.cache != nil {
		venues, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			obs.Logger(ctx).WithError(err).WithField("key", key).Warn("search cache read failed")
		} else if ok {
			result.Venues = venues
			result.FromCache = true
			return result, nil
		}
	}

	agg, err := s.aggregator.Collect(ctx, origin, radiusMeters, category)
	if err != nil {
		return nil, fmt.Errorf("search: aggregate: %w", err)
	}
	venues := agg.Venues
	result.Venues = venues

	if err := s.repo.UpsertVenues(ctx, venues); err != nil {
		obs.Logger(ctx).WithError(err).WithField("count", len(venues)).Warn("persist venues failed")
	}

	// Partial results are served but not cached.
	if !agg.Complete() {
		obs.Logger(ctx).WithField("degraded_legs", agg.DegradedLegs).WithField("key", key).Info("skipping search cache write")
	} else if s.cache != nil {
		if err := s.cache.Put(ctx, key, venues, s.cacheTTL); err != nil {
			obs.Logger(ctx).WithError(err).WithField("key", key).Warn("search cache write failed")
		}
	}

	return result, nil
}
