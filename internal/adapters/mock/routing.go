package mock

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/ports"
	"fmt"
	"sync"
)

// MockLeg is a canned route between two coordinates.
type MockLeg struct {
	From, To domain.Coordinates
	Leg      ports.RouteLeg
}

// RoutingProvider answers from fixed tables and records every call.
type RoutingProvider struct {
	mu sync.Mutex

	Durations [][]float64
	Distances [][]float64
	MatrixErr error

	legs     map[[2]domain.Coordinates]ports.RouteLeg
	RouteErr error

	MatrixCalls int
	RouteCalls  int
}

func NewRoutingProvider(legs []MockLeg) *RoutingProvider {
	m := make(map[[2]domain.Coordinates]ports.RouteLeg, len(legs))
	for _, l := range legs {
		m[[2]domain.Coordinates{l.From, l.To}] = l.Leg
	}
	return &RoutingProvider{legs: m}
}

func (p *RoutingProvider) Matrix(_ context.Context, coords []domain.Coordinates) (ports.MatrixResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.MatrixCalls++

	if p.MatrixErr != nil {
		return ports.MatrixResult{}, p.MatrixErr
	}
	if len(p.Durations) != len(coords) {
		return ports.MatrixResult{}, fmt.Errorf("mock matrix sized %d, asked for %d", len(p.Durations), len(coords))
	}

	return ports.MatrixResult{Durations: p.Durations, Distances: p.Distances}, nil
}

func (p *RoutingProvider) Route(_ context.Context, start, end domain.Coordinates, units string) (ports.RouteLeg, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RouteCalls++

	if p.RouteErr != nil {
		return ports.RouteLeg{}, p.RouteErr
	}

	leg, ok := p.legs[[2]domain.Coordinates{start, end}]
	if !ok {
		return ports.RouteLeg{}, fmt.Errorf("missing leg %v -> %v", start, end)
	}
	if leg.Units == "" {
		leg.Units = units
	}

	return leg, nil
}

// Calls returns the matrix and route call counts.
func (p *RoutingProvider) Calls() (matrix, route int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.MatrixCalls, p.RouteCalls
}
