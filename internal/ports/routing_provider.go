package ports

import (
	"context"
	"crawl-route-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// MatrixResult is an all-pairs table in request order.
// Durations are seconds, distances meters.
type MatrixResult struct {
	Durations [][]float64
	Distances [][]float64
}

// RouteStep is a raw turn instruction in the units the leg was requested in.
type RouteStep struct {
	Instruction     string
	Distance        float64
	DurationSeconds float64
}

// RouteLeg is the raw routing answer for one start->end request.
// Distance values use Units; durations are seconds.
type RouteLeg struct {
	Units    string
	Segments []RouteLegSegment
	Geometry []domain.Coordinates
}

type RouteLegSegment struct {
	Distance        float64
	DurationSeconds float64
	Steps           []RouteStep
}

// Contract for the external routing service.
type RoutingProvider interface {
	// Return all-pairs durations and distances for the given coordinates.
	Matrix(ctx context.Context, coords []domain.Coordinates) (MatrixResult, error)
	// Return a point-to-point route using the given distance units ("mi", "km", "m").
	Route(ctx context.Context, start, end domain.Coordinates, units string) (RouteLeg, error)
}
