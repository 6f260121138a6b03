package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"fmt"
)

// DurationMatrixClient fetches all-pairs travel costs for an ordered venue list.
type DurationMatrixClient struct {
	routing ports.RoutingProvider
	cache   ports.TravelCostCache
	profile string
}

// NewDurationMatrixClient builds a client; cache may be nil.
func NewDurationMatrixClient(routing ports.RoutingProvider, cache ports.TravelCostCache, profile string) *DurationMatrixClient {
	return &DurationMatrixClient{routing: routing, cache: cache, profile: profile}
}

// ComputeMatrix returns an N×N matrix over venues in the given order.
// When every pair is cached no routing call is made; otherwise exactly one
// matrix request covers all venues.
func (c *DurationMatrixClient) ComputeMatrix(ctx context.Context, venues []domain.Venue) (_ *domain.DurationMatrix, err error) {
	defer obs.Time(ctx, "matrix.ComputeMatrix")(&err)

	n := len(venues)
	if n < 2 {
		return nil, domain.InvalidInput("compute matrix", fmt.Sprintf("need at least 2 venues, got %d", n))
	}

	if m, ok := c.fromCache(ctx, venues); ok {
		return m, nil
	}

	coords := make([]domain.Coordinates, n)
	for i, v := range venues {
		coords[i] = v.Coordinates()
	}

	res, err := c.routing.Matrix(ctx, coords)
	if err != nil {
		return nil, asUpstream("compute matrix", err)
	}

	m := &domain.DurationMatrix{Durations: res.Durations, Distances: res.Distances}
	if m.Size() != n {
		return nil, domain.Upstreamf("compute matrix", "matrix has %d rows for %d venues", m.Size(), n)
	}
	if err := m.Validate(); err != nil {
		return nil, domain.Upstreamf("compute matrix", "malformed matrix: %v", err)
	}
	if m.Distances == nil {
		m.Distances = domain.NewDurationMatrix(n).Distances
	}
	for i := 0; i < n; i++ {
		m.Durations[i][i] = 0
		m.Distances[i][i] = 0
	}

	c.storeCache(ctx, venues, m)

	return m, nil
}

func (c *DurationMatrixClient) fromCache(ctx context.Context, venues []domain.Venue) (*domain.DurationMatrix, bool) {
	if c.cache == nil || !distinctIDs(venues) {
		return nil, false
	}

	n := len(venues)
	ids := make([]string, n)
	for i, v := range venues {
		ids[i] = v.PlaceID
	}

	m := domain.NewDurationMatrix(n)
	for i, origin := range ids {
		others := make([]string, 0, n-1)
		for j, id := range ids {
			if j != i {
				others = append(others, id)
			}
		}

		hits, err := c.cache.GetMany(ctx, c.profile, origin, others)
		if err != nil {
			obs.Logger(ctx).WithError(err).Warn("travel cost cache read failed")
			return nil, false
		}

		for j, id := range ids {
			if j == i {
				continue
			}
			r, ok := hits[id]
			if !ok {
				return nil, false
			}
			m.Durations[i][j] = r.DurationSeconds
			m.Distances[i][j] = r.DistanceMeters
		}
	}

	return m, true
}

func (c *DurationMatrixClient) storeCache(ctx context.Context, venues []domain.Venue, m *domain.DurationMatrix) {
	if c.cache == nil || !distinctIDs(venues) {
		return
	}

	for i, origin := range venues {
		results := make(map[string]ports.DistanceResult, len(venues)-1)
		for j, dest := range venues {
			if j == i {
				continue
			}
			results[dest.PlaceID] = ports.DistanceResult{
				DistanceMeters:  m.Distances[i][j],
				DurationSeconds: m.Durations[i][j],
			}
		}

		if err := c.cache.PutMany(ctx, c.profile, origin.PlaceID, results); err != nil {
			obs.Logger(ctx).WithError(err).Warn("travel cost cache write failed")
			return
		}
	}
}

func distinctIDs(venues []domain.Venue) bool {
	seen := make(map[string]struct{}, len(venues))
	for _, v := range venues {
		if v.PlaceID == "" {
			return false
		}
		if _, dup := seen[v.PlaceID]; dup {
			return false
		}
		seen[v.PlaceID] = struct{}{}
	}
	return true
}

// asUpstream classifies an untyped collaborator error as an upstream failure.
func asUpstream(op string, err error) error {
	if domain.KindOf(err) != domain.KindUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.Upstream(op, err)
}
