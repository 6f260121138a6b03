package dto

import (
	"crawl-route-service/internal/domain"
	"fmt"
)

type EndpointResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type SummaryResponse struct {
	Distance        string  `json:"distance"`
	Duration        string  `json:"duration"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type StepResponse struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

// LegResponse is one routed segment. Coordinates are [lat, lng] pairs.
type LegResponse struct {
	Start       EndpointResponse `json:"start"`
	End         EndpointResponse `json:"end"`
	Summary     SummaryResponse  `json:"summary"`
	Steps       []StepResponse   `json:"steps"`
	Coordinates [][2]float64     `json:"coordinates"`
}

type RouteResponse struct {
	Route LegResponse `json:"route"`
}

func FormatMiles(v float64) string { return fmt.Sprintf("%.1f miles", v) }
func FormatMinutes(v float64) string { return fmt.Sprintf("%.1f minutes", v) }

func NewSummary(miles, minutes float64) SummaryResponse {
	return SummaryResponse{
		Distance:        FormatMiles(miles),
		Duration:        FormatMinutes(minutes),
		DistanceMiles:   domain.RoundTo(miles, 1),
		DurationMinutes: domain.RoundTo(minutes, 1),
	}
}

func NewLegResponse(seg domain.RouteSegment) LegResponse {
	steps := make([]StepResponse, 0, len(seg.Steps))
	for _, s := range seg.Steps {
		steps = append(steps, StepResponse{
			Instruction: s.Instruction,
			Distance:    FormatMiles(s.DistanceMiles),
			Duration:    FormatMinutes(s.DurationMinutes),
		})
	}

	coords := make([][2]float64, 0, len(seg.Polyline))
	for _, c := range seg.Polyline {
		coords = append(coords, [2]float64{c.Lat, c.Lon})
	}

	return LegResponse{
		Start:       EndpointResponse{Name: seg.From.Name, Lat: seg.From.Lat, Lng: seg.From.Lon},
		End:         EndpointResponse{Name: seg.To.Name, Lat: seg.To.Lat, Lng: seg.To.Lon},
		Summary:     NewSummary(seg.DistanceMiles, seg.DurationMinutes),
		Steps:       steps,
		Coordinates: coords,
	}
}
