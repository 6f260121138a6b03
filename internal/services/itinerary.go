package services

import (
	"context"
	"crawl-route-service/internal/domain"
	"crawl-route-service/internal/platform/obs"
	"crawl-route-service/internal/ports"
	"fmt"
)

const (
	legUnits = "mi"

	metersPerMileExact = 1609.344
	kmPerMile          = 1.609344
)

// ItineraryBuilder stitches per-leg routes into one itinerary.
type ItineraryBuilder struct {
	routing ports.RoutingProvider
}

func NewItineraryBuilder(routing ports.RoutingProvider) *ItineraryBuilder {
	return &ItineraryBuilder{routing: routing}
}

// Build requests one leg per consecutive venue pair. Any failed leg aborts
// the build; a partial itinerary is never returned.
func (b *ItineraryBuilder) Build(ctx context.Context, ordered []domain.Venue) (_ *domain.Itinerary, err error) {
	defer obs.Time(ctx, "itinerary.Build")(&err)

	if len(ordered) < 2 {
		return nil, domain.InvalidInput("build itinerary", fmt.Sprintf("need at least 2 venues, got %d", len(ordered)))
	}

	it := &domain.Itinerary{Segments: make([]domain.RouteSegment, 0, len(ordered)-1)}
	for i := 0; i+1 < len(ordered); i++ {
		from, to := venueEndpoint(ordered[i]), venueEndpoint(ordered[i+1])

		seg, err := b.Leg(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("build itinerary: leg %d (%s -> %s): %w", i+1, from.Name, to.Name, err)
		}

		it.Segments = append(it.Segments, seg)
		it.TotalDistanceMiles += seg.DistanceMiles
		it.TotalDurationMinutes += seg.DurationMinutes
	}

	return it, nil
}

// Leg fetches a single walking route between two endpoints. Distances are
// normalized to miles and durations to minutes.
func (b *ItineraryBuilder) Leg(ctx context.Context, from, to domain.Endpoint) (_ domain.RouteSegment, err error) {
	defer obs.Time(ctx, "itinerary.Leg")(&err)

	if from.Name == "" {
		from.Name = "Start"
	}
	if to.Name == "" {
		to.Name = "End"
	}

	if err := from.Coordinates.Validate(); err != nil {
		return domain.RouteSegment{}, fmt.Errorf("start: %w", err)
	}
	if err := to.Coordinates.Validate(); err != nil {
		return domain.RouteSegment{}, fmt.Errorf("end: %w", err)
	}

	leg, err := b.routing.Route(ctx, from.Coordinates, to.Coordinates, legUnits)
	if err != nil {
		return domain.RouteSegment{}, asUpstream("route leg", err)
	}
	if len(leg.Segments) == 0 {
		return domain.RouteSegment{}, domain.Upstreamf("route leg", "route has no segments")
	}

	units := leg.Units
	if units == "" {
		units = legUnits
	}

	seg := domain.RouteSegment{From: from, To: to, Polyline: leg.Geometry}
	for _, s := range leg.Segments {
		miles, err := toMiles(units, s.Distance)
		if err != nil {
			return domain.RouteSegment{}, err
		}
		seg.DistanceMiles += miles
		seg.DurationMinutes += s.DurationSeconds / 60

		for _, st := range s.Steps {
			stepMiles, err := toMiles(units, st.Distance)
			if err != nil {
				return domain.RouteSegment{}, err
			}
			seg.Steps = append(seg.Steps, domain.RouteStep{
				Instruction:     st.Instruction,
				DistanceMiles:   stepMiles,
				DurationMinutes: st.DurationSeconds / 60,
			})
		}
	}

	return seg, nil
}

func venueEndpoint(v domain.Venue) domain.Endpoint {
	return domain.Endpoint{Name: v.Name, PlaceID: v.PlaceID, Coordinates: v.Coordinates()}
}

func toMiles(units string, v float64) (float64, error) {
	switch units {
	case "mi":
		return v, nil
	case "km":
		return v / kmPerMile, nil
	case "m":
		return v / metersPerMileExact, nil
	default:
		return 0, domain.Upstreamf("route leg", "unsupported distance units %q", units)
	}
}
