package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"fmt"
	"strings"
)

// CrawlPlanner turns a selection of stored venues into an ordered itinerary.
type CrawlPlanner struct {
	repo      ports.VenueRepository
	matrix    *DurationMatrixClient
	itinerary *ItineraryBuilder
}

func NewCrawlPlanner(repo ports.VenueRepository, matrix *DurationMatrixClient, itinerary *ItineraryBuilder) *CrawlPlanner {
	return &CrawlPlanner{repo: repo, matrix: matrix, itinerary: itinerary}
}

// OptimizeCrawl orders the selected venues starting from the first id and
// routes between them. Selection and lookup errors are reported before any
// routing call.
func (p *CrawlPlanner) OptimizeCrawl(ctx context.Context, placeIDs []string) (_ *domain.CrawlPlan, err error) {
	defer obs.Time(ctx, "crawl.OptimizeCrawl")(&err)

	ids := make([]string, 0, len(placeIDs))
	seen := make(map[string]struct{}, len(placeIDs))
	for _, id := range placeIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	switch len(ids) {
	case 0:
		return nil, domain.InvalidInput("optimize crawl", "no venues selected", "location")
	case 1:
		return nil, domain.InvalidInput("optimize crawl", "select at least 2 venues to plan a crawl", "location")
	}

	venues, err := p.repo.GetVenuesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("optimize crawl: load venues: %w", err)
	}
	if len(venues) != len(ids) {
		return nil, fmt.Errorf("optimize crawl: repository returned %d venues for %d ids", len(venues), len(ids))
	}

	m, err := p.matrix.ComputeMatrix(ctx, venues)
	if err != nil {
		return nil, fmt.Errorf("optimize crawl: %w", err)
	}

	order, err := OptimalOrder(m)
	if err != nil {
		return nil, fmt.Errorf("optimize crawl: %w", err)
	}

	ordered := make([]domain.Venue, len(order))
	for i, idx := range order {
		ordered[i] = venues[idx]
	}

	it, err := p.itinerary.Build(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("optimize crawl: %w", err)
	}

	seconds, meters := m.PathCost(order)

	return &domain.CrawlPlan{
		Venues:           ordered,
		Order:            order,
		Itinerary:        it,
		EstimatedSeconds: seconds,
		EstimatedMeters:  meters,
	}, nil
}
